package haas_service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	domain "github.com/iwtcode/haasAdapter/internal/domain/models"
	"github.com/iwtcode/haasAdapter/internal/interfaces"
	"github.com/iwtcode/haasAdapter/internal/middleware/logging"
	"github.com/iwtcode/haasAdapter/mdc"
	"github.com/iwtcode/haasAdapter/models"
	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
)

type activePoll struct {
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// Collector периодически собирает снимки станка и публикует их.
// Одновременно работает не больше одного цикла сбора.
type Collector struct {
	poller    interfaces.MachinePoller
	producer  interfaces.SnapshotPublisher
	logger    *logging.Logger
	machineID string

	mu        sync.Mutex
	active    *activePoll
	published int64
	failed    int64
	lastError string
	lastRunAt time.Time
}

var _ interfaces.SnapshotCollector = (*Collector)(nil)

func NewCollector(poller interfaces.MachinePoller, producer interfaces.SnapshotPublisher, machineID string, logger *logging.Logger) *Collector {
	return &Collector{
		poller:    poller,
		producer:  producer,
		machineID: machineID,
		logger:    logger.WithPrefix("COLLECTOR"),
	}
}

// Start запускает сбор с заданным интервалом. Сбор продолжается, пока не вызван Stop
// или не отменен ctx.
func (c *Collector) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return apperrors.ErrInvalidInterval
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return apperrors.ErrCollectorRunning
	}

	pollCtx, cancel := context.WithCancel(ctx)
	poll := &activePoll{
		interval: interval,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	c.active = poll

	results := c.poller.StartPolling(pollCtx, interval)
	go c.run(poll, results)

	c.logger.Info("Collector started", "machine_id", c.machineID, "interval", interval)
	return nil
}

// Stop останавливает сбор и ждет завершения текущего цикла.
func (c *Collector) Stop() error {
	c.mu.Lock()
	poll := c.active
	c.mu.Unlock()

	if poll == nil {
		return apperrors.ErrCollectorNotRunning
	}

	poll.cancel()
	<-poll.done
	return nil
}

// Info возвращает состояние сбора.
func (c *Collector) Info() domain.CollectorInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	info := domain.CollectorInfo{
		Running:   c.active != nil,
		Published: c.published,
		Failed:    c.failed,
		LastError: c.lastError,
	}
	if c.active != nil {
		info.Interval = c.active.interval
	}
	if !c.lastRunAt.IsZero() {
		last := c.lastRunAt
		info.LastRunAt = &last
	}
	return info
}

func (c *Collector) run(poll *activePoll, results <-chan mdc.PollingResult) {
	defer func() {
		c.mu.Lock()
		if c.active == poll {
			c.active = nil
		}
		c.mu.Unlock()
		close(poll.done)
		c.logger.Info("Collector stopped", "machine_id", c.machineID)
	}()

	for res := range results {
		c.handle(res)
	}
}

func (c *Collector) handle(res mdc.PollingResult) {
	if res.Err != nil {
		c.logger.Warn("Snapshot collected with errors", "machine_id", c.machineID, "error", res.Err)
	}

	err := c.publish(res)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastRunAt = res.Timestamp
	switch {
	case err != nil:
		c.failed++
		c.lastError = err.Error()
		c.logger.Error("Failed to publish snapshot", "machine_id", c.machineID, "error", err)
	case res.Err != nil:
		c.published++
		c.lastError = res.Err.Error()
	default:
		c.published++
		c.lastError = ""
	}
}

func (c *Collector) publish(res mdc.PollingResult) error {
	envelope := models.SnapshotEnvelope{
		ID:        uuid.NewString(),
		MachineID: c.machineID,
		Timestamp: res.Timestamp,
		Snapshot:  res.Snapshot,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err := c.producer.Produce(context.Background(), []byte(c.machineID), data); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	c.logger.Debug("Snapshot published", "machine_id", c.machineID, "id", envelope.ID, "status", res.Snapshot.Status)
	return nil
}
