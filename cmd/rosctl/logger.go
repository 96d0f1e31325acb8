package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds a console logger for the configured level.
func newLogger(cfg LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    cfg.NoColor,
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// zerologAdapter exposes a zerolog.Logger through rosapi.Logger.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Debug(msg string, args ...any) { a.logger.Debug().Fields(args).Msg(msg) }
func (a zerologAdapter) Info(msg string, args ...any)  { a.logger.Info().Fields(args).Msg(msg) }
func (a zerologAdapter) Warn(msg string, args ...any)  { a.logger.Warn().Fields(args).Msg(msg) }
func (a zerologAdapter) Error(msg string, args ...any) { a.logger.Error().Fields(args).Msg(msg) }
