// Package logger builds the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options selects where and how logs are written. Empty fields fall back to
// the LOG_LEVEL, LOG_FORMAT and LOG_FILE environment variables.
type Options struct {
	Level  string // panic, fatal, error, warn, info, debug, trace
	Format string // "text" or "json"
	Path   string // File to append to, "-" for stderr, "" to discard
}

// New creates a configured logger. The returned closer releases the log file,
// if one was opened.
//
// Logs are discarded by default: the terminal UI owns stdout and stderr, and
// anything written there corrupts the screen.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	opts = withEnv(opts)
	log := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var closer io.Closer = nopCloser{}
	switch opts.Path {
	case "":
		log.SetOutput(io.Discard)
	case "-":
		log.SetOutput(os.Stderr)
	default:
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		closer = f
	}
	return log, closer, nil
}

func withEnv(opts Options) Options {
	if opts.Level == "" {
		opts.Level = envOr("LOG_LEVEL", "info")
	}
	if opts.Format == "" {
		opts.Format = envOr("LOG_FORMAT", "text")
	}
	if opts.Path == "" {
		opts.Path = os.Getenv("LOG_FILE")
	}
	return opts
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
