package app

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib/pkg/logging"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger builds the CLI logger. The level comes from, in order:
// --log-level, -q, -v, LOG_LEVEL, then info. Conflicting or unknown
// settings are reported on the new logger.
func NewLogger(config *Config) zerolog.Logger {
	level, warning := determineLogLevel(config)

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
	if warning != "" {
		logger.Warn().Str("level", level).Msg(warning)
	}
	return logger
}

// determineLogLevel returns the effective level and, when a setting was
// ignored, why.
func determineLogLevel(config *Config) (string, string) {
	switch {
	case config.LogLevel != "":
		if level, ok := knownLevel(config.LogLevel); ok {
			return level, ""
		}
		return "info", "Unknown --log-level " + config.LogLevel
	case config.Verbose && config.Quiet:
		return "warn", "Both --verbose and --quiet given, using --quiet"
	case config.Quiet:
		return "warn", ""
	case config.Verbose:
		return "debug", ""
	case config.EnvLogLevel != "":
		level, _ := knownLevel(config.EnvLogLevel)
		return level, ""
	}
	return "info", ""
}

// knownLevel normalizes level, falling back to info.
func knownLevel(level string) (string, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, l := range logLevels {
		if l == level {
			return l, true
		}
	}
	return "info", false
}
