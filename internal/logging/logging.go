package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// SetupLogging returns the process logger: JSON lines on stdout at info.
func SetupLogging() *logrus.Logger {
	return NewLogger(os.Stdout)
}

// NewLogger builds a JSON logger writing to out, with the level under
// the "loglevel" key.
func NewLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	})
	return logger
}

// SetLevel applies a level name such as "debug" or "warn".
func SetLevel(logger *logrus.Logger, level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(parsed)
	return nil
}
