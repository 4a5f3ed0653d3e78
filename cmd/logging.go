package cmd

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"grower/config"
)

// configureLogging applies the configured level and picks JSON output in production
func configureLogging(logger *log.Logger, cfg *config.Config, out io.Writer) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	logger.SetLevel(level)
	logger.SetOutput(out)

	if cfg.IsProduction() {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
