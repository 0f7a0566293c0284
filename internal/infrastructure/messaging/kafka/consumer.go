package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	app "github.com/growthfolio/next-comic-store/internal/application/order"
	"github.com/growthfolio/next-comic-store/internal/config"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

// StatusEventHandler reacts to an order status change event.
type StatusEventHandler interface {
	HandleStatusChange(ctx context.Context, event app.StatusChangedEvent) error
}

type StatusConsumer struct {
	reader  *kafkago.Reader
	handler StatusEventHandler
	logger  logger.Logger
}

func NewStatusConsumer(cfg config.KafkaConfig, handler StatusEventHandler, log logger.Logger) *StatusConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.StatusTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &StatusConsumer{
		reader:  reader,
		handler: handler,
		logger:  log,
	}
}

// Start blocks reading events until the context is cancelled or the reader
// fails. Undecodable messages are skipped, not fatal.
func (c *StatusConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var event app.StatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warn("skipping undecodable status event",
				logger.String("key", string(msg.Key)),
				logger.Error(err),
			)
			continue
		}

		if err := c.handler.HandleStatusChange(ctx, event); err != nil {
			c.logger.Error("handle status event",
				logger.String("order_id", event.OrderID),
				logger.Error(err),
			)
		}
	}
}

func (c *StatusConsumer) Close() {
	_ = c.reader.Close()
}
