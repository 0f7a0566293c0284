package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/growthfolio/next-comic-store/internal/config"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

// StatusProducer publishes order status change events. Losing an event is
// acceptable; failing the order request because of Kafka is not, so callers
// treat publish errors as log-only.
type StatusProducer struct {
	client *kgo.Client
	topic  string
	logger logger.Logger
}

func NewStatusProducer(cfg config.KafkaConfig, log logger.Logger) (*StatusProducer, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.StatusTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.DisableIdempotentWrite(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Info("kafka producer ready",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.StatusTopic),
	)

	return &StatusProducer{
		client: client,
		topic:  cfg.StatusTopic,
		logger: log,
	}, nil
}

func (p *StatusProducer) PublishStatusChange(ctx context.Context, key string, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is empty")
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(key),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}

	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		p.logger.Error("publish status event failed",
			logger.String("topic", p.topic),
			logger.String("key", key),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}
	return nil
}

func (p *StatusProducer) Close(ctx context.Context) error {
	p.logger.Info("closing kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
