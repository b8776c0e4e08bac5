// Package server assembles the HTTP router of the converter API.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/sacsbrainz/betconverter/internal/app/handler"
	"github.com/sacsbrainz/betconverter/internal/app/service"
	"github.com/sacsbrainz/betconverter/internal/middleware"
	"github.com/sacsbrainz/betconverter/internal/models"
)

// Options tunes the router.
type Options struct {
	// CORSOrigin is the browser origin allowed to call the API. Empty allows any.
	CORSOrigin string

	// RateLimit is the number of conversions one IP may request per
	// RateWindow. Zero disables the limit.
	RateLimit  int
	RateWindow time.Duration
}

// Init builds the router: GET /bookies, POST / and GET /ping.
func Init(svc service.ConverterIface, logger *zap.Logger, opts Options) *chi.Mux {
	getHandler := handler.NewGet(svc, logger)
	postHandler := handler.NewPost(svc, logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithCORS(opts.CORSOrigin))
	r.Use(middleware.WithGzip)

	r.Get("/bookies", getHandler.Bookies)
	r.Get("/ping", getHandler.Ping)

	r.Group(func(r chi.Router) {
		if opts.RateLimit > 0 {
			window := opts.RateWindow
			if window <= 0 {
				window = time.Minute
			}
			r.Use(httprate.Limit(
				opts.RateLimit,
				window,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					handler.WriteError(w, http.StatusTooManyRequests, models.MessageError, "Too many conversion requests, try again later", "")
				}),
			))
		}
		r.Post("/", postHandler.Convert)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusMethodNotAllowed, models.MessageError, "Method Not Allowed", "")
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusNotFound, models.MessageError, "Route not found", "")
	})

	return r
}
