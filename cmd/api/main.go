package main

import (
	"context"
	_ "embed"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pequenospassos/storefront/internal/catalog"
	"github.com/pequenospassos/storefront/internal/config"
	"github.com/pequenospassos/storefront/internal/httpx"
	kafkax "github.com/pequenospassos/storefront/internal/kafka"
	"github.com/pequenospassos/storefront/internal/orders"
	"github.com/pequenospassos/storefront/internal/postgres"
	"github.com/pequenospassos/storefront/internal/redisx"
)

//go:embed migrations.sql
var migrationSQL string

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db, migrationSQL); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	createdProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024, logger)
	createdProd.Start(ctx)
	statusProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024, logger)
	statusProd.Start(ctx)

	// Services & handlers
	svc := &orders.Service{Store: &orders.Repo{DB: db}, Log: logger}
	router := httpx.NewRouter()

	oh := &httpx.OrdersHandler{
		Svc:       svc,
		Producer:  createdProd,
		StatusPub: statusProd,
		Redis:     rdb,
		Log:       logger,
		Service:   cfg.ServiceName,
		JWTSecret: cfg.JWTSecret,
	}
	oh.Register(router)

	ph := &httpx.ProductsHandler{Repo: &catalog.Repo{DB: db}, Log: logger, JWTSecret: cfg.JWTSecret}
	ph.Register(router)

	dh := &httpx.DashboardHandler{Svc: svc, Redis: rdb, Log: logger, JWTSecret: cfg.JWTSecret}
	dh.Register(router)

	ah := &httpx.AuthHandler{JWTSecret: cfg.JWTSecret, AdminEmail: cfg.AdminEmail, AdminPass: cfg.AdminPass}
	ah.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	createdProd.Close()
	statusProd.Close()
	cancel()
	createdProd.WaitClosed()
	statusProd.WaitClosed()
}
