// logger.go - structured logging for the daemon, built on zerolog the way
// gnark's own logger package wraps it: one console writer for humans, an
// optional file sink alongside it, both carrying the same fields.
package main

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog.Logger writing a human-readable console view
// to stderr and, if logFile is non-empty, newline-delimited JSON to that
// file as well. The returned closer must be called on shutdown.
func NewLogger(level, logFile string) (zerolog.Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	writers := []io.Writer{console}

	closer := func() error { return nil }
	if logFile != "" {
		fh, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Logger{}, nil, err
		}
		writers = append(writers, fh)
		closer = fh.Close
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().Timestamp().Str("component", "txd").Logger()

	return logger, closer, nil
}
