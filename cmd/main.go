// Package main is the entry point for the shipit-service application.
//
// @title           Shipit Service API
// @version         1.0.0
// @description     Warehouse outbound order fulfillment.
//
//	Validates orders against the catalog and held stock, reserves the stock and packs the order onto trucks.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/shipit-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Orders
// @tag.description Outbound fulfillment, restocking and stock receipt
//
// @tag.name        Audit
// @tag.description Fulfillment audit trail
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	_ "github.com/guttosm/shipit-service/docs" // swagger docs

	"github.com/guttosm/shipit-service/config"
	"github.com/guttosm/shipit-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	a, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(app.Instrument(a.Router), cfg.Server)
	runErr := server.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("Failed to release resources")
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
