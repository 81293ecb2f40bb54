package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/Mansi-10-4/nova/api/routes"
	"github.com/Mansi-10-4/nova/internal/advisor"
	"github.com/Mansi-10-4/nova/internal/payment"
	"github.com/Mansi-10-4/nova/internal/storefront"
	"github.com/Mansi-10-4/nova/pkg/config"
	"github.com/Mansi-10-4/nova/pkg/db"
	"github.com/Mansi-10-4/nova/pkg/gemini"
	"github.com/Mansi-10-4/nova/pkg/instance"
	"github.com/Mansi-10-4/nova/pkg/kv"
	"github.com/Mansi-10-4/nova/pkg/logger"
	"github.com/Mansi-10-4/nova/pkg/metrics"
	"github.com/Mansi-10-4/nova/pkg/migrate"
	"github.com/Mansi-10-4/nova/pkg/redis"
	"github.com/Mansi-10-4/nova/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer
	defer func() {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = multierr.Append(closeErr, closers[i].Close())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error releasing resources", closeErr)
		}
	}()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient)
	}

	store, err := buildStore(ctx, cfg, logg, redisClient, &closers)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}

	gateway, err := buildGateway(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap payments", err)
		os.Exit(1)
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap gemini", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	manager := storefront.NewManager(storefront.Deps{
		Store:   store,
		Advisor: advisor.New(geminiClient, cfg.Gemini, storefrontMetrics, logg),
		Gateway: gateway,
		Metrics: storefrontMetrics,
		Logger:  logg,

		IdleTTL:     cfg.Session.IdleTTL,
		MaxSessions: cfg.Session.MaxSessions,
	})

	deps := routes.Deps{
		Config:   cfg,
		Logger:   logg,
		Sessions: manager,
		Gatherer: registry,
	}
	if redisClient != nil {
		deps.Redis = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"storage":  cfg.Storage.Backend,
		"payments": cfg.Payment.Provider,
	})
	logg.Info(serverCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(serverCtx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(serverCtx, "graceful shutdown failed", err)
	}
}

func buildStore(ctx context.Context, cfg *config.Config, logg *logger.Logger, redisClient *redis.Client, closers *[]io.Closer) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis storage backend selected without a redis endpoint")
		}
		return kv.NewRedis(redisClient), nil

	case config.StorageBackendSQL:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, dbClient)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			return nil, fmt.Errorf("running dev migrations: %w", err)
		}
		return kv.NewSQL(dbClient.DB()), nil
	}
	return kv.NewMemory(), nil
}

func buildGateway(ctx context.Context, cfg *config.Config, logg *logger.Logger) (payment.Gateway, error) {
	if cfg.Payment.Provider == config.PaymentProviderStripe {
		client, err := stripe.NewClient(ctx, cfg.Stripe, logg)
		if err != nil {
			return nil, err
		}
		return payment.NewStripe(client, cfg.Payment.Currency), nil
	}
	if cfg.App.IsProd() {
		logg.Warn(ctx, "simulated payment gateway in use in production")
	}
	return payment.NewSimulated(cfg.Payment.Latency, cfg.Payment.SuccessRate), nil
}
