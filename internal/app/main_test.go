//go:build integration

package app

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/guttosm/shipit-service/config"
	"github.com/guttosm/shipit-service/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

// mongoConfig points the audit log at the shared container, one database per test.
func mongoConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{
		URI:                            testutil.GetSharedContainerURI(),
		DatabaseName:                   testutil.SanitizeDBName(t.Name()),
		LogsTTL:                        30 * 24 * time.Hour,
		Enabled:                        true,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}
