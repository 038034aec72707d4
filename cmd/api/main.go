package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bfinancial_sdk/internal/adapter/http/handlers"
	"bfinancial_sdk/internal/adapter/http/routes"
	"bfinancial_sdk/internal/adapter/persistence/repository"
	"bfinancial_sdk/internal/infrastructure/cache"
	"bfinancial_sdk/internal/infrastructure/config"
	"bfinancial_sdk/internal/infrastructure/database"
	"bfinancial_sdk/internal/infrastructure/logging"
	"bfinancial_sdk/internal/infrastructure/metrics"
	"bfinancial_sdk/internal/infrastructure/payments"
	"bfinancial_sdk/internal/infrastructure/qrcode"
	"bfinancial_sdk/internal/usecase"
	"bfinancial_sdk/internal/usecase/interfaces"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// @title           BFinancial relay API
// @version         1.0
// @description     Relay service for the BFlex payment gateway, backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Failed to startup the application", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("bfinancial", reg)

	gateway, err := newGateway(cfg, logger, m)
	if err != nil {
		return err
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return err
	}
	paymentRepo := repository.NewPaymentRecordDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable)
	verificationRepo := repository.NewVerificationDynamoRepository(ddb, cfg.DynamoDB.VerificationsTable)

	var statusCache interfaces.IStatusCache
	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("[cache][redis] status cache disabled", zap.Error(err))
		} else {
			defer func() { _ = client.Close() }()
			statusCache = cache.NewRedisStatusCache(client, cfg.Redis.StatusTTL, m)
		}
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, gateway, statusCache, qrcode.NewGenerator(cfg.QRCode.Size), logger)
	reconciler := usecase.NewReconciliationUseCase(gateway, m, logger, usecase.ReconcileOptions{
		PollInterval:     cfg.Verification.PollInterval,
		MaxAttempts:      cfg.Verification.MaxAttempts,
		TransportRetries: cfg.Verification.TransportRetries,
	})
	verificationUseCase := usecase.NewVerificationUseCase(verificationRepo, paymentRepo, reconciler, logger, cfg.Verification.Timeout)
	defer verificationUseCase.Close()

	router := routes.NewRouter(routes.Handlers{
		Payment:      handlers.NewPaymentHandler(paymentUseCase, logger),
		Verification: handlers.NewVerificationHandler(verificationUseCase, logger),
	}, routes.Options{Logger: logger, Metrics: m, Gatherer: reg})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[api] listening", zap.String("addr", srv.Addr), zap.String("provider", cfg.Gateway.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("[api] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newGateway(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (interfaces.IPaymentGateway, error) {
	if cfg.Gateway.Mock {
		return payments.NewMockGateway(logger), nil
	}
	switch cfg.Gateway.Provider {
	case config.ProviderMercadoPago:
		return payments.NewMercadoPagoGateway(cfg.MercadoPago.AccessToken, logger)
	default:
		return payments.NewBFlexGateway(payments.BFlexOptions{
			BaseURL:          cfg.Gateway.BaseURL,
			Authorization:    payments.Bearer(cfg.Gateway.AuthKey),
			Timeout:          cfg.Gateway.Timeout,
			FailureThreshold: cfg.Gateway.FailureThreshold,
			OpenTimeout:      cfg.Gateway.OpenTimeout,
			Logger:           logger,
			Metrics:          m,
		})
	}
}
