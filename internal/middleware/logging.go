// Package middleware holds the HTTP middleware of the converter API:
// request IDs, request logging, gzip and CORS.
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type (
	// responseData is the status and body size of a response.
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter records what the wrapped handler writes.
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// WithRequestLogging logs one line per request with its method, url,
// status, size, duration and request id.
func WithRequestLogging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rd := &responseData{}
			lw := loggingResponseWriter{
				ResponseWriter: w,
				responseData:   rd,
			}

			next.ServeHTTP(&lw, r)

			log.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.Duration("duration", time.Since(start)),
				zap.Int("status", rd.status),
				zap.Int("size", rd.size),
				zap.String("request_id", RequestIDFromContext(r.Context())),
			)
		})
	}
}
