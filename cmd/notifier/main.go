package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/growthfolio/next-comic-store/internal/application/notification"
	"github.com/growthfolio/next-comic-store/internal/config"
	kafkainfra "github.com/growthfolio/next-comic-store/internal/infrastructure/messaging/kafka"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zl, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafkainfra.NewStatusConsumer(cfg.Kafka, notification.NewService(zl), zl)
	defer consumer.Close()

	zl.Info("notifier consuming status events",
		logger.Any("brokers", cfg.Kafka.Brokers),
		logger.String("topic", cfg.Kafka.StatusTopic),
	)
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		zl.Fatal("consumer stopped", logger.Error(err))
	}
}
