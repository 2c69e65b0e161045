package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const headerRequestID = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(headerRequestID, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		log.WithFields(log.Fields{
			"kind":      "http",
			"method":    req.Method,
			"path":      req.URL.Path,
			"status":    rec.status,
			"duration":  time.Since(start).String(),
			"requestId": requestID,
		}).Info()
	})
}
