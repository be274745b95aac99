package kafka

import (
	"ChatCV/internal/api/config"
	"ChatCV/internal/model"
	"context"
	"fmt"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// ExchangeProducer 将问答记录以 JSON 发布到 Kafka
type ExchangeProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewExchangeProducer(cfg config.KafkaConfig) (*ExchangeProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	log.Info("Kafka exchange producer initialized", "topic", cfg.ExchangeTopic)
	return NewExchangeProducerWith(producer, cfg.ExchangeTopic), nil
}

func NewExchangeProducerWith(producer sarama.SyncProducer, topic string) *ExchangeProducer {
	return &ExchangeProducer{
		producer: producer,
		topic:    topic,
	}
}

// Record 以会话ID为 key，同一会话的记录落在同一分区
func (s *ExchangeProducer) Record(ctx context.Context, record *model.ExchangeRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(record.SessionID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("publish exchange: %w", err)
	}

	log.DebugContext(ctx, "exchange published", "topic", s.topic, "partition", partition, "offset", offset)
	return nil
}

func (s *ExchangeProducer) Close() error {
	return s.producer.Close()
}
