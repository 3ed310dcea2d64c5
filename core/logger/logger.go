package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

// Init configures the process-wide logger. Safe to call more than once;
// only the first call wins.
func Init(level string) {
	once.Do(func() {
		var lvl slog.Level
		switch strings.ToLower(level) {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
		slog.SetDefault(log)
	})
}

func get() *slog.Logger {
	if log == nil {
		Init("info")
	}
	return log
}

// normalize tolerates both key/value pairs and bare values. Call sites pass
// either form: logger.Error("Repo:Method", err) or
// logger.Info("msg", "key", value).
func normalize(args []any) []any {
	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			out = append(out, key, args[i+1])
			i += 2
			continue
		}
		switch v := args[i].(type) {
		case error:
			out = append(out, "error", v)
		default:
			out = append(out, "detail", v)
		}
		i++
	}
	return out
}

func Debug(message string, args ...any) {
	get().Debug(message, normalize(args)...)
}

func Info(message string, args ...any) {
	get().Info(message, normalize(args)...)
}

func Warn(message string, args ...any) {
	get().Warn(message, normalize(args)...)
}

func Error(message string, args ...any) {
	get().Error(message, normalize(args)...)
}
