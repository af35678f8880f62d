package kafka

import (
	"context"

	"github.com/iwtcode/haasAdapter/internal/middleware/logging"
)

// LogPublisher пишет снимки в лог. Используется, когда Kafka не настроена.
type LogPublisher struct {
	logger *logging.Logger
}

func NewLogPublisher(logger *logging.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.WithPrefix("PUBLISHER")}
}

func (p *LogPublisher) Produce(_ context.Context, key, value []byte) error {
	p.logger.Info("Snapshot", "key", string(key), "value", string(value))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
