package kafka

import (
	"context"

	"github.com/iwtcode/haasAdapter/internal/config"
	"github.com/iwtcode/haasAdapter/internal/interfaces"
	"github.com/iwtcode/haasAdapter/internal/middleware/logging"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

// NewPublisher возвращает продюсера Kafka, если задан брокер, иначе публикацию в лог
func NewPublisher(cfg *config.AppConfig, logger *logging.Logger) interfaces.SnapshotPublisher {
	if cfg.KafkaBroker == "" {
		logger.Warn("KAFKA_BROKER is not set, snapshots will be written to the log")
		return NewLogPublisher(logger)
	}
	return NewKafkaProducer(cfg)
}

// NewKafkaProducer создает новый экземпляр продюсера Kafka
func NewKafkaProducer(cfg *config.AppConfig) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{writer: writer}
}

// Produce отправляет сообщение в Kafka
func (p *KafkaProducer) Produce(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   key,
			Value: value,
		},
	)
}

// Close закрывает соединение с Kafka
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
