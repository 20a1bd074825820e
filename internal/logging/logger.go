package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/quotehub/quotehub/internal/config"
)

// NewLogger creates the process-wide structured logger. In dev mode the
// output is pretty-printed to the console; otherwise JSON to stdout.
func NewLogger(cfg *config.Config) zerolog.Logger {
	var logger zerolog.Logger
	if cfg.DevMode {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "quotehub-api").Logger()
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
