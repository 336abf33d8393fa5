//go:build !integration

package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/catalog-service/config"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		cfg  config.LogConfig
		want zerolog.Level
	}{
		{cfg: config.LogConfig{Level: "debug"}, want: zerolog.DebugLevel},
		{cfg: config.LogConfig{Level: "warn", Pretty: true}, want: zerolog.WarnLevel},
		{cfg: config.LogConfig{Level: "ERROR"}, want: zerolog.ErrorLevel},
		{cfg: config.LogConfig{}, want: zerolog.InfoLevel},
		{cfg: config.LogConfig{Level: "verbose"}, want: zerolog.InfoLevel},
	}

	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			InitializeLogger(tt.cfg)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}
