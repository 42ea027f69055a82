// Package logging provides the single structured logger shared by
// cmd/zebra-solver's command handlers, so every log line carries the same
// formatter and level regardless of which subcommand emits it.
package logging

import "github.com/sirupsen/logrus"

// Logger is *logrus.Logger; exported as a type alias so callers can type
// their own fields (e.g. a field holding a *logging.Logger) without
// importing logrus directly.
type Logger = logrus.Logger

// New returns a logger configured for CLI use: text output to stderr at
// info level, matching logrus's own defaults plus a fixed timestamp format
// so output stays diffable across runs.
func New() *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return l
}
