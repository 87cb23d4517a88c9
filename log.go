package bonsai

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	// TimeFormat is the timestamp format of loggers built by NewLogger
	TimeFormat = "2006-01-02 15:04:05"
	// DefaultLogLevel is the level of loggers built without one
	DefaultLogLevel = logrus.InfoLevel
)

// defaultLogger is used by classifiers not given one with WithLogger
var defaultLogger logrus.FieldLogger = logrus.WithField("module", "bonsai")

/*
NewLogger takes a writer and a level name and returns a logger writing text
records to it at that level. An empty level means DefaultLogLevel, an
unknown one a *ConfigurationError. A nil writer means stderr.
*/
func NewLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl := DefaultLogLevel
	if level != "" {
		var err error
		lvl, err = logrus.ParseLevel(level)
		if err != nil {
			return nil, &ConfigurationError{Field: "log_level", Value: level, Reason: err.Error()}
		}
	}
	if w == nil {
		w = os.Stderr
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimeFormat,
	})
	return logger, nil
}
