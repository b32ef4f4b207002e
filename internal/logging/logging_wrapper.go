package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// statusRecorder remembers the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingWrapper adapts a plain net/http handler that reports its own
// failure. Each request gets a fresh LogData, also placed on the request
// context so code below the handler can reach it through GetLogData.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)
		req = req.WithContext(WithLogData(req.Context(), logData))
		log.Debugf("Handler.%v.Start", loggingName)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		endTimer := logData.AddTiming("duration")
		err := handler(rec, req, logData)
		endTimer()
		logData.AddData("status", rec.status)

		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
