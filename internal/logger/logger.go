package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger writing structured JSON to stderr.
// It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		level := zerolog.InfoLevel
		if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
		defaultLogger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	})
}

// Get returns the initialized default logger.
func Get() zerolog.Logger {
	Init()
	return defaultLogger
}

// Info logs an informational message with alternating key/value args.
func Info(msg string, args ...any) {
	l := Get()
	l.Info().Fields(args).Msg(msg)
}

// Warn logs a warning message with alternating key/value args.
func Warn(msg string, args ...any) {
	l := Get()
	l.Warn().Fields(args).Msg(msg)
}

// Error logs an error message with alternating key/value args.
func Error(msg string, err error, args ...any) {
	l := Get()
	l.Error().Err(err).Fields(args).Msg(msg)
}

// Debug logs a debug message with alternating key/value args.
func Debug(msg string, args ...any) {
	l := Get()
	l.Debug().Fields(args).Msg(msg)
}
