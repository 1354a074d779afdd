package app

import (
	"context"
	"fmt"

	"github.com/guttosm/shipit-service/config"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/guttosm/shipit-service/internal/repository/memory"
	"github.com/guttosm/shipit-service/internal/repository/postgres"
	"github.com/rs/zerolog/log"
)

// InitializeStore opens the catalog and stock backend selected by cfg.Store.Driver.
// Unlike the audit database, the store is required: any failure is returned.
func InitializeStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		return initializePostgres(ctx, cfg.Postgres)
	default:
		return initializeMemory(cfg.Store)
	}
}

func initializeMemory(cfg config.StoreConfig) (repository.Store, error) {
	store := memory.New()
	if cfg.SeedFile == "" {
		log.Warn().Msg("In-memory store started without a seed file; the catalog is empty")
		return store, nil
	}
	if err := store.LoadSeedFile(cfg.SeedFile); err != nil {
		return nil, fmt.Errorf("load seed file %s: %w", cfg.SeedFile, err)
	}
	log.Info().Str("seed_file", cfg.SeedFile).Msg("In-memory store seeded")
	return store, nil
}

func initializePostgres(ctx context.Context, cfg config.PostgresConfig) (repository.Store, error) {
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:             cfg.DSN,
		MaxConns:        int32(cfg.MaxConns),
		MinConns:        int32(cfg.MinConns),
		MaxConnLifetime: cfg.MaxConnLifetime,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if cfg.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres schema: %w", err)
		}
		log.Info().Msg("Postgres schema applied")
	}

	log.Info().Int("max_conns", cfg.MaxConns).Msg("Connected to Postgres")
	return postgres.NewStore(pool), nil
}
