package main

import (
	"fmt"
	"log/slog"

	"github.com/spellwise/vocab-api/internal/config"
	"github.com/spellwise/vocab-api/internal/platform/logger"
)

// loadAppConfig loads configuration and installs the configured logger as
// the slog default.
func loadAppConfig(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("timezone", cfg.Scheduler.Timezone),
		slog.Int("deck_max_limit", cfg.Deck.MaxLimit))

	return cfg, l, nil
}
