//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   string
	}{
		{
			name:       "2xx returns info",
			statusCode: 200,
			expected:   "info",
		},
		{
			name:       "3xx returns info",
			statusCode: 301,
			expected:   "info",
		},
		{
			name:       "4xx returns warn",
			statusCode: 400,
			expected:   "warn",
		},
		{
			name:       "404 returns warn",
			statusCode: 404,
			expected:   "warn",
		},
		{
			name:       "5xx returns error",
			statusCode: 500,
			expected:   "error",
		},
		{
			name:       "503 returns error",
			statusCode: 503,
			expected:   "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getLogLevel(tt.statusCode)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		statusCode    int
		expectedLevel string
	}{
		{name: "successful request logs info", statusCode: http.StatusOK, expectedLevel: "info"},
		{name: "client error logs warn", statusCode: http.StatusBadRequest, expectedLevel: "warn"},
		{name: "server error logs error", statusCode: http.StatusInternalServerError, expectedLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockLoggingService)
			var written []*model.LogEntry
			svc.On("CreateLogs", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				written = append(written, args.Get(1).([]*model.LogEntry)...)
			}).Return(nil)
			sink := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 10, FlushInterval: time.Hour})

			router := gin.New()
			router.Use(RequestID(), RequestLogger(sink))
			router.GET("/api/v1/warehouses/:warehouseId/orders/inbound", func(c *gin.Context) {
				c.Status(tt.statusCode)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/warehouses/7/orders/inbound", nil)
			req.Header.Set(RequestIDHeader, "req-9")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)
			sink.Stop()

			assert.Equal(t, tt.statusCode, w.Code)
			require.Len(t, written, 1)
			entry := written[0]
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, "req-9", entry.RequestID)
			assert.Equal(t, 7, entry.WarehouseID)
			assert.Equal(t, http.MethodGet, entry.Method)
			assert.Equal(t, tt.statusCode, entry.StatusCode)
		})
	}
}

func TestRequestLogger_RecordsHandlerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.MockLoggingService)
	var written []*model.LogEntry
	svc.On("CreateLogs", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written = append(written, args.Get(1).([]*model.LogEntry)...)
	}).Return(nil)
	sink := NewAsyncLogger(svc, AsyncLoggerConfig{NumWorkers: 1, FlushInterval: time.Hour})

	router := gin.New()
	router.Use(RequestID(), RequestLogger(sink), ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("pool closed"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	sink.Stop()

	require.Len(t, written, 1)
	assert.Equal(t, "pool closed", written[0].Error)
	assert.Zero(t, written[0].WarehouseID)
}

func TestRequestLogger_WithoutSink(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger(nil))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
