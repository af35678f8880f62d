package interfaces

import (
	"context"
	"time"

	domain "github.com/iwtcode/haasAdapter/internal/domain/models"
	"github.com/iwtcode/haasAdapter/mdc"
	"github.com/iwtcode/haasAdapter/models"
)

// MachineReader - доступ к станку. *haas.Client удовлетворяет этому интерфейсу.
type MachineReader interface {
	GetStatus() (models.MachineStatus, error)
	GetSnapshot() (models.MachineSnapshot, error)
	GetVariable(variable int) (models.Value[string], error)
}

// SnapshotCollector определяет контракт для фонового сбора и публикации снимков.
type SnapshotCollector interface {
	Start(ctx context.Context, interval time.Duration) error
	Stop() error
	Info() domain.CollectorInfo
}

// HostMonitor сообщает о загрузке машины, на которой работает сервис.
type HostMonitor interface {
	HostStats() (*domain.HostStats, error)
}

// MachinePoller периодически собирает снимки. *haas.Client удовлетворяет этому интерфейсу.
type MachinePoller interface {
	StartPolling(ctx context.Context, interval time.Duration) <-chan mdc.PollingResult
}
