package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// WithCORS lets the browser client at origin call the API. An empty origin
// allows any.
func WithCORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Content-Encoding", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})
}
