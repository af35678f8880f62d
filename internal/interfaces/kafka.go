package interfaces

import (
	"context"
)

// SnapshotPublisher определяет контракт для отправки снимков во внешние системы
type SnapshotPublisher interface {
	Produce(ctx context.Context, key, value []byte) error
	Close() error
}
