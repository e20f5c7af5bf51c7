package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// New builds the service logger. LOG_LEVEL overrides the default info
// level; unknown values fall back rather than failing startup.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsed, err := zap.ParseAtomicLevel(lvl)
		if err == nil {
			cfg.Level = parsed
		}
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
