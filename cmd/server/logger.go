package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/config"
)

// newLogger builds the production or development logger at cfg.LogLevel
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}
