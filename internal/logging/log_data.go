package logging

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogData collects the fields and timings of one request so they are
// logged together on a single line. Timings are reported in milliseconds.
type LogData struct {
	mu      sync.Mutex
	fields  logrus.Fields
	timings map[string]time.Duration
	logger  *logrus.Logger
}

func NewLogData(logger *logrus.Logger) *LogData {
	return &LogData{
		fields:  logrus.Fields{},
		timings: map[string]time.Duration{},
		logger:  logger,
	}
}

// AddTiming starts a timer and returns the func that records it under
// entryName, replacing any earlier value.
func (l *LogData) AddTiming(entryName string) func() {
	return l.timer(entryName, false)
}

// AddToExistingTiming is AddTiming but accumulates across calls.
func (l *LogData) AddToExistingTiming(entryName string) func() {
	return l.timer(entryName, true)
}

func (l *LogData) timer(entryName string, accumulate bool) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		l.mu.Lock()
		defer l.mu.Unlock()
		if accumulate {
			elapsed += l.timings[entryName]
		}
		l.timings[entryName] = elapsed
	}
}

func (l *LogData) AddData(key string, value interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fields[key] = value
}

// Log returns an entry carrying everything recorded so far.
func (l *LogData) Log() *logrus.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(logrus.Fields, len(l.fields)+len(l.timings))
	for key, value := range l.fields {
		fields[key] = value
	}
	for key, elapsed := range l.timings {
		fields[key] = elapsed.Milliseconds()
	}
	return l.logger.WithFields(fields)
}
