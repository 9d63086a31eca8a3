// Package observability provides the structured logging and metrics sinks
// shared by all pipeline stages.
package observability

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. JSON output is used when running
// behind a log collector; text otherwise.
func NewLogger(level string, jsonFormat bool) *logrus.Logger {
	logger := logrus.New()
	if jsonFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

// NewTestLogger returns a logger that discards output, for use in tests.
func NewTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// StageLogger returns an entry carrying the pipeline epoch (the correlation
// token for a submission) and the stage name.
func StageLogger(logger *logrus.Logger, epoch uint64, stage string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"epoch": epoch,
		"stage": stage,
	})
}
