package app

import (
	"time"

	"github.com/guttosm/shipit-service/internal/circuitbreaker"
	"github.com/guttosm/shipit-service/internal/metrics"
)

// newCircuitBreaker returns a breaker that reports its state to Prometheus.
func newCircuitBreaker(name string, failures, successes int, timeout time.Duration) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          timeout,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
}
