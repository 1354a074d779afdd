package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipit-service/internal/circuitbreaker"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker is a dependency the service cannot serve without.
// Both stores and the MongoDB client satisfy it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker registers a dependency probed on every readiness check.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	if checker != nil {
		h.checkers[name] = checker
	}
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
// Breakers guard best-effort sinks, so an open one degrades the report
// without failing readiness.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.circuitBreakers[name] = cb
	}
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the service is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns OK if the stock store and other required dependencies answer. Open circuit breakers are reported as degraded.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	code := http.StatusOK
	status := "ok"
	checks := make(map[string]interface{})

	for name, result := range h.probe(ctx) {
		checks[name] = result.status
		checks[name+"_latency_ms"] = result.latency.Milliseconds()
		if result.err != nil {
			code = http.StatusServiceUnavailable
			status = "unavailable"
		}
	}

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy && code == http.StatusOK {
			status = "degraded"
		}
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": checks,
	})
}

type probeResult struct {
	status  string
	latency time.Duration
	err     error
}

// probe runs every checker concurrently so a slow audit store cannot hide a
// stock store answer behind the shared deadline.
func (h *HealthHandler) probe(ctx context.Context) map[string]probeResult {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]probeResult, len(h.checkers))
	)
	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := checker.HealthCheck(ctx)
			r := probeResult{status: "ok", latency: time.Since(start), err: err}
			if err != nil {
				r.status = err.Error()
			}
			mu.Lock()
			results[name] = r
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()
	return results
}
