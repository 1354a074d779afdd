// Package app provides router configuration.
package app

import (
	"github.com/guttosm/shipit-service/config"
	"github.com/guttosm/shipit-service/internal/http"
	"github.com/guttosm/shipit-service/internal/middleware"
	"github.com/guttosm/shipit-service/internal/repository"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
// sink may be nil when the audit database is disabled.
func InitializeRouter(
	services *ServiceComponents,
	store repository.Store,
	dbComponents *DatabaseComponents,
	sink *middleware.AsyncLogger,
	idempotency middleware.IdempotencyConfig,
	cfg config.Config,
) *RouterComponents {
	opts := []http.HandlerOption{
		http.WithLoadingSheets(services.Sheets),
		http.WithAuditSink(sink),
	}

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("store", store)

	if dbComponents != nil {
		opts = append(opts, http.WithAuditQueries(dbComponents.LoggingService))
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}
	healthHandler.RegisterCircuitBreaker("kafka", services.PublisherCircuitBreaker)

	handler := http.NewHandler(services.Fulfillment, services.Restock, services.Receipts, opts...)

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		RequestLogSink: sink,
		Idempotency:    idempotency,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
