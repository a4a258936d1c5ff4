package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"store-admin-service/internal/events"
	"store-admin-service/internal/handler"
	mid "store-admin-service/internal/middleware"
	"store-admin-service/internal/repository"
	"store-admin-service/internal/service"
	"store-admin-service/pkg/config"
	"store-admin-service/pkg/database"
	"store-admin-service/pkg/jwtutil"
	"store-admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, appConfig, log, migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newPublisher(appConfig *config.Config, log *zap.Logger) (events.Publisher, error) {
	if !appConfig.Kafka.Enabled() {
		log.Info("Change events disabled, no Kafka brokers configured")
		return events.NopPublisher{}, nil
	}

	cl, err := events.NewKafkaClient(appConfig.Kafka.Brokers, appConfig.Kafka.Topic)
	if err != nil {
		return nil, err
	}
	publisher, err := events.NewKafkaPublisher(cl)
	if err != nil {
		cl.Close()
		return nil, err
	}

	log.Info("Change events enabled",
		zap.Strings("brokers", appConfig.Kafka.Brokers),
		zap.String("topic", appConfig.Kafka.Topic))
	return publisher, nil
}

func serve(ctx context.Context, appConfig *config.Config, log *zap.Logger, migrateFirst bool) error {
	log.Info("Starting store-admin-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))
	log.Debug("Loaded configuration", appConfig.LogConfig()...)

	if migrateFirst {
		if err := migrateUp(appConfig, log); err != nil {
			return err
		}
	}

	// Initialize JWT utility
	tokens := jwtutil.New(appConfig.JWT.SigningKey, appConfig.JWT.ExpirationHours)

	// Initialize Prometheus metrics
	metrics := prometheus.InitMetrics(prom.DefaultRegisterer, appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.Open(appConfig)
	if err != nil {
		return err
	}
	defer database.Close(db)
	log.Info("Database connection established")

	publisher, err := newPublisher(appConfig, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	svc := service.New(repository.NewGormStore(db, metrics), publisher, metrics)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(metrics.Middleware())

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Catalog API routes. Reads are public, writes need a bearer token.
	api := e.Group("/api", mid.AuthMiddleware(tokens, metrics))
	handler.New(svc).Register(api)

	// Start server
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", appConfig.Server.Port))
		if err := e.Start(":" + appConfig.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server", zap.Duration("timeout", appConfig.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}
