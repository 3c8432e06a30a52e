package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// AccessLog пишет одну строку на запрос с request_id, статусом и длительностью
func AccessLog(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			logger.Info("%s %s - %d in %dms (request_id=%s)",
				r.Method, r.URL.Path, rec.status, time.Since(start).Milliseconds(),
				RequestIDFromContext(r.Context()))
		})
	}
}
