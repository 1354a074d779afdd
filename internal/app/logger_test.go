//go:build !integration

package app

import (
	"testing"

	"github.com/guttosm/shipit-service/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		name string
		cfg  config.LogConfig
		want zerolog.Level
	}{
		{name: "defaults to info", cfg: config.LogConfig{}, want: zerolog.InfoLevel},
		{name: "custom level", cfg: config.LogConfig{Level: "debug"}, want: zerolog.DebugLevel},
		{name: "pretty output", cfg: config.LogConfig{Level: "warn", Pretty: true}, want: zerolog.WarnLevel},
		{name: "unknown level", cfg: config.LogConfig{Level: "loud"}, want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { InitializeLogger(tt.cfg) })
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}
