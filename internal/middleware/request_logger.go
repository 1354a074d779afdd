package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/logger"
)

// RequestLogger returns a middleware that logs HTTP request details in JSON format.
// It logs: request ID, method, path, status code, latency, IP, and user agent.
// When sink is not nil each request is also queued for persistence.
func RequestLogger(sink *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method
		path := c.Request.URL.Path
		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()
		warehouseID := warehouseParam(c)

		log := logger.FromContext(c.Request.Context()).With().
			Str("method", method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", ip).
			Str("user_agent", userAgent).
			Logger()

		switch {
		case statusCode >= 500:
			log.Error().Msg("HTTP request")
		case statusCode >= 400:
			log.Warn().Msg("HTTP request")
		default:
			log.Info().Msg("HTTP request")
		}

		if sink == nil {
			return
		}

		entry := &model.LogEntry{
			Timestamp:   time.Now(),
			Level:       getLogLevel(statusCode),
			Message:     "HTTP request",
			RequestID:   GetRequestID(c),
			Method:      method,
			Path:        path,
			StatusCode:  statusCode,
			Duration:    latency.Milliseconds(),
			IP:          ip,
			UserAgent:   userAgent,
			WarehouseID: warehouseID,
		}
		if last := c.Errors.Last(); last != nil {
			entry.Error = last.Error()
		}
		sink.Log(entry)
	}
}

// warehouseParam returns the :warehouseId route parameter, or 0.
func warehouseParam(c *gin.Context) int {
	id, err := strconv.Atoi(c.Param("warehouseId"))
	if err != nil {
		return 0
	}
	return id
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
