package app

import (
	"time"

	"github.com/guttosm/catalog-service/config"
)

func testConfig(sourceURL string) config.Config {
	cfg := config.Defaults()
	cfg.Source.BaseURL = sourceURL
	cfg.Source.Timeout = time.Second
	cfg.Database.Enabled = false
	return cfg
}
