package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPrometheusMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/api/v1/warehouses/:warehouseId/orders/inbound", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues("GET", "/api/v1/warehouses/:warehouseId/orders/inbound", "200"))

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/warehouses/"+id+"/orders/inbound", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	after := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues("GET", "/api/v1/warehouses/:warehouseId/orders/inbound", "200"))
	assert.Equal(t, 2.0, after-before)
}

func TestPrometheusMiddleware_UnmatchedRoute(t *testing.T) {
	router := gin.New()
	router.Use(PrometheusMiddleware())

	before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues("GET", "unmatched", "404"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues("GET", "unmatched", "404"))-before)
}

func TestRecordFulfillment(t *testing.T) {
	tests := []struct {
		name      string
		outcome   string
		trucks    int
		units     int
		wantUnits float64
	}{
		{name: "confirmed adds units", outcome: "confirmed", trucks: 2, units: 11000, wantUnits: 11000},
		{name: "rejection adds nothing", outcome: "rejected_not_found", trucks: 0, units: 5, wantUnits: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := FulfillmentsTotal.WithLabelValues(tt.outcome)
			beforeCount := testutil.ToFloat64(counter)
			beforeUnits := testutil.ToFloat64(UnitsReservedTotal)

			RecordFulfillment(10*time.Millisecond, tt.outcome, tt.trucks, tt.units)

			assert.Equal(t, 1.0, testutil.ToFloat64(counter)-beforeCount)
			assert.Equal(t, tt.wantUnits, testutil.ToFloat64(UnitsReservedTotal)-beforeUnits)
		})
	}
}

func TestRecorders(t *testing.T) {
	RecordRestockPlan(3)
	RecordEventPublish("fulfillment.confirmed", "success")
	RecordCacheOperation("catalog", "get", "hit")
	SetCircuitBreakerState("kafka", 1)
	RecordPanic("/api/v1/orders/outbound")
	RecordRateLimited("warehouse")

	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("kafka")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(RestockLinesTotal), 3.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(RateLimitedTotal.WithLabelValues("warehouse")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(PanicsRecoveredTotal.WithLabelValues("/api/v1/orders/outbound")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(EventsPublishedTotal.WithLabelValues("fulfillment.confirmed", "success")), 1.0)
}
