package mdc

import (
	"context"
	"fmt"
	"time"

	"github.com/iwtcode/haasAdapter/models"
	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
)

// PollingResult содержит снимок или ошибку от одной попытки опроса.
type PollingResult struct {
	Snapshot  models.MachineSnapshot
	Timestamp time.Time
	Err       error
}

// CollectFunc собирает один снимок.
type CollectFunc func() (models.MachineSnapshot, error)

// StartPolling запускает фоновый опрос станка через AggregateAllData.
func (a *MdcAdapter) StartPolling(ctx context.Context, interval time.Duration) <-chan PollingResult {
	return Poll(ctx, interval, a.AggregateAllData)
}

// Poll вызывает collect на каждом тике interval и отправляет результат в канал.
// Сбор идет последовательно: тики, пришедшие во время сбора, пропускаются.
// Канал закрывается после отмены ctx.
// При interval <= 0 канал содержит один результат с ErrInvalidInterval и сразу закрыт.
func Poll(ctx context.Context, interval time.Duration, collect CollectFunc) <-chan PollingResult {
	if interval <= 0 {
		invalid := make(chan PollingResult, 1)
		invalid <- PollingResult{
			Snapshot:  models.EmptySnapshot(),
			Timestamp: time.Now().UTC(),
			Err:       fmt.Errorf("%w: %s", apperrors.ErrInvalidInterval, interval),
		}
		close(invalid)
		return invalid
	}

	results := make(chan PollingResult)

	go func() {
		defer close(results)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			snapshot, err := collect()
			result := PollingResult{
				Snapshot:  snapshot,
				Timestamp: time.Now().UTC(),
				Err:       err,
			}

			select {
			case results <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results
}
