//go:build !integration

package tracing

import (
	"context"
	"testing"

	"github.com/guttosm/shipit-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{Enabled: false})

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestSetup_Enabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{
		Enabled:     true,
		Endpoint:    "localhost:4318",
		URLPath:     "/v1/traces",
		Insecure:    true,
		ServiceName: "shipit-test",
		Version:     "test",
		SampleRatio: 1,
	})
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "test-span")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// export fails without a collector; shutdown still returns
	_ = shutdown(ctx)
}
