package middleware

import (
	"net/http"
	"time"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// AccessLog пишет строку лога на каждый запрос
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			logger.Info("%s %s - status=%d, duration=%s, request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), GetRequestID(r.Context()))
		})
	}
}
