package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
)

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(outW, &slog.HandlerOptions{Level: level})
	case "logfmt":
		handler = slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(outW, &tint.Options{
			Level:       level,
			TimeFormat:  time.TimeOnly,
			ReplaceAttr: colorLevel,
		})
	}

	return slog.New(handler)
}

func colorLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) != 0 {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	switch level {
	case slog.LevelDebug:
		a.Value = slog.StringValue("DEBUG")
	case slog.LevelInfo:
		a.Value = slog.StringValue(color.GreenString("INFO"))
	case slog.LevelWarn:
		a.Value = slog.StringValue(color.YellowString("WARN"))
	case slog.LevelError:
		a.Value = slog.StringValue(color.RedString("ERROR"))
	}
	return a
}
