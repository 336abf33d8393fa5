package app

import (
	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/logger"
)

// InitializeLogger sets up the global zerolog logger. Unknown levels fall
// back to info.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
