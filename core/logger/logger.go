// Package logger is the process-wide structured logger.
//
// Call sites follow the "Component:Method:Step" message convention and pass
// alternating key/value pairs:
//
//	logger.Info("MeetingService:Create:Start", "name", req.Name)
//	logger.Error("MeetingRepository:Create", err)
//
// A bare error in key position is logged under the "error" key.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Options configures the default logger.
type Options struct {
	Level     string // debug, info, warn, error
	Format    string // json or text
	AddSource bool
	Output    io.Writer
}

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// Init replaces the default logger. It is safe to call more than once.
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level), AddSource: opts.AddSource}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}
	current.Store(slog.New(handler))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the underlying slog logger.
func L() *slog.Logger { return current.Load() }

func Debug(msg string, args ...any) { L().Debug(msg, normalize(args)...) }

func Info(msg string, args ...any) { L().Info(msg, normalize(args)...) }

func Warn(msg string, args ...any) { L().Warn(msg, normalize(args)...) }

func Error(msg string, args ...any) { L().Error(msg, normalize(args)...) }

// normalize turns errors sitting in key position into "error" attributes so
// that logger.Error("X", err) does not produce a !BADKEY entry.
func normalize(args []any) []any {
	if len(args) == 0 {
		return args
	}
	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			out = append(out, "error", v)
		case string:
			if i+1 < len(args) {
				out = append(out, v, args[i+1])
				i++
			} else {
				out = append(out, "detail", v)
			}
		case slog.Attr:
			out = append(out, v)
		default:
			out = append(out, "detail", v)
		}
	}
	return out
}
