// Package logging provides structured logging for signlib using zerolog.
// Terminals get human-readable console output; pipes and files get JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("video_id", id).Msg("Video added")
//
//	ctx := logging.WithOperation(ctx, "import_bulk")
//	logging.FromContext(ctx).Debug().Int("files", n).Msg("Encoding batch")
package logging

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := NewLoggerFromConfig(FromEnv())
	defaultLogger.Store(&logger)
}

// Default returns the process-wide logger. It is configured from LOG_LEVEL,
// LOG_FORMAT and LOG_OUTPUT until SetDefault or Configure replaces it.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger, zerolog's global included.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event { return Default().Debug() }

// Info starts an info event on the default logger.
func Info() *zerolog.Event { return Default().Info() }

// Warn starts a warn event on the default logger.
func Warn() *zerolog.Event { return Default().Warn() }

// Error starts an error event on the default logger.
func Error() *zerolog.Event { return Default().Error() }
