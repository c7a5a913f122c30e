package cli

import (
	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/config"
)

// configureLogging initializes the global logger for CLI operations. JSON
// output switches the log records to JSON as well so stderr stays machine
// readable.
func configureLogging(cfg *config.Config) {
	logger.InitLogger(cfg.Settings.LogLevel, logger.ParseFormat(cfg.Settings.OutputFormat))
}
