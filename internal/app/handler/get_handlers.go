package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sacsbrainz/betconverter/internal/app/service"
	"github.com/sacsbrainz/betconverter/internal/models"
)

type GetHandler struct {
	service service.ConverterIface
	logger  *zap.Logger
}

func NewGet(s service.ConverterIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		service: s,
		logger:  l,
	}
}

// Bookies handles GET /bookies and returns the whole catalog.
func (h *GetHandler) Bookies(res http.ResponseWriter, _ *http.Request) {
	writeJSON(res, http.StatusOK, models.BookiesResponse{
		Message: models.MessageSuccess,
		Data:    h.service.Bookmakers(),
	})
}

// Ping reports whether the service dependencies answer.
func (h *GetHandler) Ping(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	if err := h.service.PingContext(ctx); err != nil {
		h.logger.Warn("ping failed", zap.Error(err))
		WriteError(res, http.StatusServiceUnavailable, models.MessageError, err.Error(), "")
		return
	}

	res.WriteHeader(http.StatusOK)
}
