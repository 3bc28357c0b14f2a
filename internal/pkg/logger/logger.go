package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
}

type zeroLogger struct {
	zl zerolog.Logger
}

// New creates a zerolog-backed logger at the given level. The value is
// constructed once in main and passed down explicitly; there is no
// process-wide logger.
func New(level string) Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	return &zeroLogger{zl: zl}
}

func (l *zeroLogger) Error(msg string, err error) {
	l.zl.Error().Err(err).Msg(msg)
}

func (l *zeroLogger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *zeroLogger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *zeroLogger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}
