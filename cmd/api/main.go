package main

import (
	"context"
	"log"

	"github.com/growthfolio/next-comic-store/internal/application/auth"
	"github.com/growthfolio/next-comic-store/internal/application/catalog"
	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	"github.com/growthfolio/next-comic-store/internal/application/payment"
	"github.com/growthfolio/next-comic-store/internal/config"
	"github.com/growthfolio/next-comic-store/internal/infrastructure/cache"
	ginserver "github.com/growthfolio/next-comic-store/internal/infrastructure/http/gin"
	kafkainfra "github.com/growthfolio/next-comic-store/internal/infrastructure/messaging/kafka"
	stripeinfra "github.com/growthfolio/next-comic-store/internal/infrastructure/payment/stripe"
	"github.com/growthfolio/next-comic-store/internal/infrastructure/persistence/postgres"
	"github.com/growthfolio/next-comic-store/internal/interfaces/http/handler"
	"github.com/growthfolio/next-comic-store/internal/interfaces/http/middleware"
	"github.com/growthfolio/next-comic-store/internal/interfaces/http/router"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zl.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		zl.Fatal("migrate failed", logger.Error(err))
	}
	if err := postgres.Seed(ctx, pool); err != nil {
		zl.Fatal("seed failed", logger.Error(err))
	}

	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	// The storefront works without redis and without kafka; both degrade to
	// warnings so a dev checkout does not need the full stack running.
	var catalogCache catalog.Cache
	if redisCache, err := cache.NewRedisCache(cfg.Redis); err != nil {
		zl.Warn("redis unavailable, catalog cache disabled", logger.Error(err))
	} else {
		catalogCache = redisCache
		defer redisCache.Close()
	}

	var publisher orderapp.Publisher
	if producer, err := kafkainfra.NewStatusProducer(cfg.Kafka, zl); err != nil {
		zl.Warn("kafka unavailable, status events disabled", logger.Error(err))
	} else {
		publisher = producer
		defer producer.Close(ctx)
	}

	orderService := orderapp.NewService(orderRepo, userRepo, publisher, zl)
	catalogService := catalog.NewService(productRepo, catalogCache, zl)
	authService := auth.NewService(userRepo, zl)

	var confirmer payment.Confirmer
	var starter payment.SessionStarter
	switch cfg.Payment.Provider {
	case config.PaymentProviderStripe:
		confirmer = payment.DisabledConfirmer{}
		starter = stripeinfra.NewSessionClient(cfg.Payment)
	default:
		confirmer = payment.NewMockConfirmer(orderService)
		starter = payment.NewMockSessionStarter(cfg.Payment.BaseURL)
	}
	sessionService := payment.NewSessionService(orderService, starter)
	webhookProcessor := payment.NewWebhookProcessor(
		stripeinfra.NewWebhookVerifier(cfg.Payment.WebhookSecret),
		orderService,
		zl,
	)

	metrics := middleware.NewMetrics("api")
	engine := ginserver.NewEngine(metrics.Handler())
	router.RegisterRoutes(engine, router.Handlers{
		Orders:   handler.NewOrderHandler(orderService),
		Payments: handler.NewPaymentHandler(confirmer, sessionService, webhookProcessor),
		Products: handler.NewProductHandler(catalogService),
		Auth:     handler.NewAuthHandler(authService),
	})

	zl.Info("starting api server",
		logger.String("addr", cfg.Server.Address()),
		logger.String("payment_provider", cfg.Payment.Provider),
	)
	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		zl.Fatal("server run failed", logger.Error(err))
	}
}
