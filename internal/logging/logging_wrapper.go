package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// LoggingWrapper turns a LogData-aware handler into an http.HandlerFunc. A
// fresh LogData is created per request and injected into the request context
// so Huma operations can reach it through GetLogData.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		log.Infof("Handler.%v.Start", loggingName)

		logData := NewLogData(log)
		req = req.WithContext(WithLogData(req.Context(), logData))

		endTimer := logData.AddTiming("duration")
		defer endTimer()
		err := handler(w, req, logData)
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
