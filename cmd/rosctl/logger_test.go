package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zereker/rosapi"
)

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LogConfig{Level: "warn", NoColor: true}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LogConfig{Level: "loud", NoColor: true}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	var logger rosapi.Logger = zerologAdapter{logger: newLogger(LogConfig{Level: "debug", NoColor: true}, &buf)}

	logger.Debug("--->", "word", "/system/identity/print")

	assert.Contains(t, buf.String(), "--->")
	assert.Contains(t, buf.String(), "word=/system/identity/print")
}
