// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"gorm.io/gorm"

	adapthttp "github.com/taskfolio/taskfolio/internal/adapters/http"
	"github.com/taskfolio/taskfolio/internal/adapters/http/handlers"
	"github.com/taskfolio/taskfolio/internal/adapters/http/middleware"

	"github.com/taskfolio/taskfolio/internal/adapters/clients/ai"
	"github.com/taskfolio/taskfolio/internal/adapters/storage"
	"github.com/taskfolio/taskfolio/internal/app/suggestions"
	"github.com/taskfolio/taskfolio/internal/app/todolists"
	"github.com/taskfolio/taskfolio/internal/app/users"
	"github.com/taskfolio/taskfolio/internal/bus"
	"github.com/taskfolio/taskfolio/internal/platform/clock"
	"github.com/taskfolio/taskfolio/internal/platform/config"
	"github.com/taskfolio/taskfolio/internal/platform/health"
	"github.com/taskfolio/taskfolio/internal/platform/httpclient"
	"github.com/taskfolio/taskfolio/internal/platform/logging"
	"github.com/taskfolio/taskfolio/internal/platform/telemetry"
	"github.com/taskfolio/taskfolio/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph, including the
	// database connection, migrations, and all bus registrations).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*storage.HealthChecker](injector))
	registry.Register(do.MustInvoke[*ai.Client](injector))

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// Persistence.
	do.Provide(injector, func(_ do.Injector) (*gorm.DB, error) {
		db, err := storage.Open(cfg.Database.DSN, storage.Options{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, logger)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(db); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		return db, nil
	})

	do.Provide(injector, func(i do.Injector) (*storage.HealthChecker, error) {
		return storage.NewHealthChecker(do.MustInvoke[*gorm.DB](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.UserRepository, error) {
		return storage.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ToDoListRepository, error) {
		return storage.NewToDoListRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Outbound completion client.
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.AI.Client, "ai-completion", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*ai.Client, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return ai.New(client, cfg.AI.Model, logger), nil
	})

	// Message bus with every context's handlers and subscribers registered.
	do.Provide(injector, func(i do.Injector) (*bus.Bus, error) {
		b := bus.New(logger)
		clk := clock.System{}

		listSvc := todolists.NewService(do.MustInvoke[ports.ToDoListRepository](i), b, clk, logger)
		todolists.Register(b, listSvc)

		userSvc := users.NewService(do.MustInvoke[ports.UserRepository](i), b, clk, logger)
		users.Register(b, userSvc)

		suggestSvc := suggestions.NewService(do.MustInvoke[*ai.Client](i), b, logger)
		suggestions.Register(b, suggestSvc)

		return b, nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	// Inbound HTTP.
	do.Provide(injector, func(i do.Injector) (*handlers.UserHandler, error) {
		return handlers.NewUserHandler(do.MustInvoke[*bus.Bus](i), cfg.Pagination), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ToDoListHandler, error) {
		return handlers.NewToDoListHandler(do.MustInvoke[*bus.Bus](i), cfg.Pagination), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.SuggestionHandler, error) {
		return handlers.NewSuggestionHandler(do.MustInvoke[*bus.Bus](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		userH := do.MustInvoke[*handlers.UserHandler](i)
		listH := do.MustInvoke[*handlers.ToDoListHandler](i)
		suggestH := do.MustInvoke[*handlers.SuggestionHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		mw := middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		)

		return adapthttp.NewRouter(userH, listH, suggestH, healthH, mw), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
