// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/config"
	"github.com/guttosm/shipit-service/internal/http"
	"github.com/guttosm/shipit-service/internal/middleware"
	"github.com/guttosm/shipit-service/internal/tracing"
	"github.com/rs/zerolog/log"
)

// App is the wired service together with the resources released by Close.
type App struct {
	Router *gin.Engine

	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

func (a *App) onClose(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	a := &App{}

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	a.onClose("tracing", shutdownTracing)

	store, err := InitializeStore(ctx, cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.onClose("store", store.Close)

	// Audit storage is optional; nil means disabled or unreachable
	dbComponents := InitializeDatabase(cfg.Database)
	var sink *middleware.AsyncLogger
	if dbComponents != nil {
		a.onClose("mongodb", dbComponents.DB.Close)
		sink = middleware.NewAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
		a.onClose("async logger", func(context.Context) error {
			sink.Stop()
			return nil
		})
	}

	services := InitializeServices(cfg, store, dbComponents)
	a.onClose("publisher", func(context.Context) error { return services.Publisher.Close() })
	if services.Catalog != nil {
		a.onClose("catalog cache", func(context.Context) error {
			services.Catalog.Stop()
			return nil
		})
	}

	idempotency := middleware.DefaultIdempotencyConfig()
	a.onClose("idempotency cache", func(context.Context) error {
		idempotency.Cache.Stop()
		return nil
	})

	routerComponents := InitializeRouter(services, store, dbComponents, sink, idempotency, cfg)
	a.Router = http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)

	return a, nil
}

// Close releases resources in reverse order of acquisition, so the request
// log sink drains before MongoDB disconnects.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			log.Error().Err(err).Str("resource", c.name).Msg("Failed to release resource")
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
