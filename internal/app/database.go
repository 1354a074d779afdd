// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/guttosm/shipit-service/config"
	"github.com/guttosm/shipit-service/internal/circuitbreaker"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/guttosm/shipit-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds the MongoDB backed audit and request log components.
type DatabaseComponents struct {
	DB                 *repository.MongoDB
	LoggingService     service.LoggingService
	LogsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the logging service.
// Returns nil if the database is disabled or the connection fails; the
// service then runs without audit storage.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without audit log")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	logsCB := newCircuitBreaker("mongodb-logs", cfg.CircuitBreakerFailureThreshold, cfg.CircuitBreakerSuccessThreshold, cfg.CircuitBreakerTimeout)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                 db,
		LoggingService:     service.NewLoggingService(logsRepo),
		LogsCircuitBreaker: logsCB,
	}
}
