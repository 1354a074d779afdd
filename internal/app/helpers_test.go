//go:build !integration

package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/shipit-service/config"
	"github.com/stretchr/testify/require"
)

const testSeed = `{
	"companies": [{"gcp": "0000346", "name": "Pets Co"}],
	"products": [
		{"gtin": "0000346374230", "gcp": "0000346", "name": "Dog bowl", "weightGrams": 300, "lowerThreshold": 100, "minimumOrderQuantity": 10}
	],
	"stock": [{"warehouseId": 1, "gtin": "0000346374230", "held": 20000}]
}`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{
			Size:   100,
			TTL:    time.Minute,
			Shards: 2,
		},
		Store: config.StoreConfig{
			Driver:   config.StoreMemory,
			SeedFile: writeSeed(t, testSeed),
		},
		Fulfillment: config.FulfillmentConfig{TruckCapacityKg: 2000},
		Kafka:       config.KafkaConfig{Topic: "shipit.fulfillments"},
	}
}
