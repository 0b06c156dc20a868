package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New creates the application logger. With debug enabled the level drops
// to DebugLevel so per-page crawl decisions (policy filtering, queue
// drops, skips) become visible.
func New(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// NewNop returns a logger that discards everything. Components take a
// *logrus.Entry at construction; passing a nop entry disables
// observability without any component-side branching.
func NewNop() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
