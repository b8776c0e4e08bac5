package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sacsbrainz/betconverter/internal/app/service"
	"github.com/sacsbrainz/betconverter/internal/models"
)

type PostHandler struct {
	service service.ConverterIface
	logger  *zap.Logger
}

func NewPost(s service.ConverterIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		service: s,
		logger:  l,
	}
}

// Convert handles POST / with a {code, input, output, remove} body.
func (h *PostHandler) Convert(res http.ResponseWriter, req *http.Request) {
	var request models.ConversionRequest

	if err := decodeJSONBody(res, req, &request); err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			WriteError(res, mr.status, models.MessageError, mr.msg, "")
			return
		}
		h.logger.Error("decode conversion request", zap.Error(err))
		WriteError(res, http.StatusInternalServerError, models.MessageError, "Something went wrong", "")
		return
	}

	r, err := h.service.Convert(req.Context(), request)
	if err != nil {
		h.writeConvertError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, r)
}

func (h *PostHandler) writeConvertError(res http.ResponseWriter, err error) {
	var re *service.RequestError
	var ee *service.EngineError

	switch {
	case errors.As(err, &re):
		WriteError(res, http.StatusBadRequest, models.MessageError, re.Message, "")

	case errors.As(err, &ee):
		status := ee.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		WriteError(res, status, ee.Message, ee.Err, ee.Kind)

	case errors.Is(err, service.ErrEngineNotConfigured):
		WriteError(res, http.StatusServiceUnavailable, models.MessageError, err.Error(), "")

	default:
		h.logger.Error("conversion failed", zap.Error(err))
		WriteError(res, http.StatusInternalServerError, models.MessageError, "Something went wrong", "")
	}
}
