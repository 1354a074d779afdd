// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/shipit-service/config"
	"github.com/guttosm/shipit-service/internal/logger"
)

// InitializeLogger configures the global zerolog logger. An unknown level falls back to info.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
