package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/turbot/pipe-fittings/constants"
	"github.com/turbot/pipe-fittings/sanitize"
)

const EnvLogLevel = "MIMIC_SUBSET_LOG_LEVEL"

func Initialize() {
	slog.SetDefault(subsetLogger())
}

// subsetLogger returns a logger that writes to stderr and sanitizes log entries
func subsetLogger() *slog.Logger {
	level := getLogLevel()
	if level == constants.LogLevelOff {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	}

	handlerOptions := &slog.HandlerOptions{
		Level: level,

		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			sanitized := sanitize.Instance.SanitizeKeyValue(a.Key, a.Value.Any())

			return slog.Attr{
				Key:   a.Key,
				Value: slog.AnyValue(sanitized),
			}
		},
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, handlerOptions)).With("source", "mimic-subset")
}

func getLogLevel() slog.Leveler {
	levelEnv := os.Getenv(EnvLogLevel)

	switch strings.ToLower(levelEnv) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return constants.LogLevelOff
	}
}
