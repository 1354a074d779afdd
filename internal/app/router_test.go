//go:build !integration

package app

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/shipit-service/internal/http"
	"github.com/guttosm/shipit-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRouter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.SwaggerUser = "docs"
	cfg.Server.SwaggerPass = "secret"
	cfg.Kafka.Enabled = true
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	store, err := InitializeStore(context.Background(), cfg)
	require.NoError(t, err)
	services := InitializeServices(cfg, store, nil)
	defer func() { _ = services.Publisher.Close() }()

	components := InitializeRouter(services, store, nil, nil, middleware.IdempotencyConfig{}, cfg)

	require.NotNil(t, components)
	assert.NotNil(t, components.Handler)
	assert.NotNil(t, components.HealthHandler)
	assert.Equal(t, 100, components.Config.RateLimit)
	assert.Equal(t, time.Minute, components.Config.RateWindow)
	assert.Equal(t, 5*time.Second, components.Config.RequestTimeout)
	assert.Equal(t, "docs", components.Config.SwaggerUser)
	assert.Nil(t, components.Config.RequestLogSink)

	router := http.NewRouter(components.Handler, components.HealthHandler, components.Config)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/readyz", nil))
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store")
	assert.Contains(t, w.Body.String(), "kafka_circuit")

	// audit listing needs MongoDB
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/api/v1/warehouses/1/fulfillments", nil))
	assert.Equal(t, nethttp.StatusServiceUnavailable, w.Code)
}
