// Package app provides service initialization.
package app

import (
	"github.com/guttosm/shipit-service/config"
	"github.com/guttosm/shipit-service/internal/circuitbreaker"
	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/events"
	"github.com/guttosm/shipit-service/internal/pdf"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/guttosm/shipit-service/internal/service"
	"github.com/guttosm/shipit-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Fulfillment service.FulfillmentService
	Restock     service.RestockService
	Receipts    service.StockReceiptService
	Sheets      pdf.Generator
	// Catalog is nil when the catalog cache is disabled.
	Catalog   *service.CachedCatalog
	Publisher events.Publisher
	// PublisherCircuitBreaker is nil when Kafka is disabled.
	PublisherCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeServices wires the fulfillment pipeline over store. db may be nil.
func InitializeServices(cfg config.Config, store repository.Store, db *DatabaseComponents) *ServiceComponents {
	var audit service.LoggingService
	if db != nil {
		audit = db.LoggingService
	}

	components := &ServiceComponents{}
	components.Publisher, components.PublisherCircuitBreaker = initializePublisher(cfg.Kafka)

	packer := service.NewBestFitPacker(service.WithTruckCapacityKg(cfg.Fulfillment.TruckCapacityKg))
	opts := []service.FulfillmentOption{
		service.WithPublisher(components.Publisher),
		service.WithAuditLog(audit),
	}
	if cfg.Cache.Size > 0 {
		components.Catalog = service.NewCachedCatalog(store, cache.NewSharded[model.Product]("catalog", cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards))
		opts = append(opts, service.WithCatalog(components.Catalog))
	}

	components.Fulfillment = service.NewFulfillmentOrchestrator(store, packer, opts...)
	components.Restock = service.NewRestockPlanner(store)
	components.Receipts = service.NewStockReceiver(store, components.Publisher, audit)
	components.Sheets = pdf.NewMarotoGenerator()

	log.Info().
		Int("truck_capacity_kg", cfg.Fulfillment.TruckCapacityKg).
		Bool("catalog_cache", components.Catalog != nil).
		Bool("kafka", cfg.Kafka.Enabled).
		Msg("Services initialized")

	return components
}

func initializePublisher(cfg config.KafkaConfig) (events.Publisher, *circuitbreaker.CircuitBreaker) {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return events.NopPublisher{}, nil
	}
	defaults := circuitbreaker.DefaultConfig()
	cb := newCircuitBreaker("kafka", defaults.FailureThreshold, defaults.SuccessThreshold, defaults.Timeout)
	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("Publishing fulfillment events to Kafka")
	return events.NewPublisherWithCircuitBreaker(events.NewKafkaPublisher(cfg), cb), cb
}
