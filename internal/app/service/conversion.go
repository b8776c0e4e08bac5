// Package service implements the server side of the converter: the
// bookmaker catalog and the gateway that checks conversion requests against
// it before handing them to the external conversion engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sacsbrainz/betconverter/internal/cache"
	"github.com/sacsbrainz/betconverter/internal/catalog"
	"github.com/sacsbrainz/betconverter/internal/engine"
	"github.com/sacsbrainz/betconverter/internal/metrics"
	"github.com/sacsbrainz/betconverter/internal/models"
)

// ErrEngineNotConfigured is returned by Convert when no engine URL is set.
var ErrEngineNotConfigured = errors.New("conversion engine is not configured")

// RequestError is a conversion request refused before reaching the engine.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// EngineError is an engine failure tagged with its kind.
type EngineError struct {
	StatusCode int
	Message    string
	Err        string
	Kind       models.ErrorKind
	cause      error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine: %s", e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.cause
}

type ConversionService struct {
	catalog *catalog.Catalog
	engine  Engine
	cache   cache.ResultCache
	keyer   *cache.Keyer
	logger  *zap.Logger
	metrics *metrics.Metrics
	health  func(context.Context) error
}

// Option customises a ConversionService.
type Option func(*ConversionService)

// WithCache answers repeated requests from rc.
func WithCache(rc cache.ResultCache) Option {
	return func(s *ConversionService) {
		s.cache = rc
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ConversionService) {
		s.metrics = m
	}
}

// WithHealth sets the dependency check used by PingContext.
func WithHealth(fn func(context.Context) error) Option {
	return func(s *ConversionService) {
		s.health = fn
	}
}

// NewConversion builds the service. A nil engine makes every Convert call
// fail with ErrEngineNotConfigured.
func NewConversion(c *catalog.Catalog, e Engine, logger *zap.Logger, opts ...Option) *ConversionService {
	s := &ConversionService{
		catalog: c,
		engine:  e,
		keyer:   cache.NewKeyer(11),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bookmakers returns the catalog in declaration order.
func (s *ConversionService) Bookmakers() []catalog.Bookmaker {
	s.metrics.IncCatalog()
	return s.catalog.List()
}

func (s *ConversionService) PingContext(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	return s.health(ctx)
}

// Convert checks r, answers from the cache when possible and otherwise
// forwards r to the engine.
func (s *ConversionService) Convert(ctx context.Context, r models.ConversionRequest) (*models.ConversionResponse, error) {
	req, err := s.check(r)
	if err != nil {
		s.metrics.IncConversion(metrics.OutcomeRejected)
		return nil, err
	}

	if s.engine == nil {
		return nil, ErrEngineNotConfigured
	}

	key := s.keyer.Key(req)

	if s.cache != nil {
		res, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			s.metrics.IncCacheLookup(true)
			s.metrics.IncConversion(metrics.OutcomeCached)
			s.logger.Info("conversion served from cache", zap.String("key", key))
			return &models.ConversionResponse{Message: models.MessageSuccess, Data: res}, nil
		case errors.Is(err, cache.ErrMiss):
			s.metrics.IncCacheLookup(false)
		default:
			s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		}
	}

	res, err := s.engine.Convert(ctx, req)
	if err != nil {
		return nil, s.engineError(err)
	}

	if res.Message != models.MessageSuccess {
		s.metrics.IncConversion(metrics.OutcomeFailed)
		return res, nil
	}

	s.metrics.IncConversion(metrics.OutcomeSuccess)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res.Data); err != nil {
			s.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
		}
	}

	return res, nil
}

func (s *ConversionService) engineError(err error) error {
	s.metrics.IncConversion(metrics.OutcomeUpstream)

	var ue *engine.UpstreamError
	if errors.As(err, &ue) {
		kind := models.KindOf(ue.Err)
		s.metrics.IncUpstreamError(string(kind))
		s.logger.Info("engine refused conversion", zap.Int("status", ue.StatusCode), zap.String("kind", string(kind)), zap.String("error", ue.Err))

		msg := ue.Message
		if msg == "" {
			msg = http.StatusText(ue.StatusCode)
		}
		return &EngineError{StatusCode: ue.StatusCode, Message: msg, Err: ue.Err, Kind: kind, cause: err}
	}

	s.metrics.IncUpstreamError(string(models.KindUnknown))
	s.logger.Error("engine unreachable", zap.Error(err))

	return &EngineError{
		StatusCode: http.StatusBadGateway,
		Message:    http.StatusText(http.StatusBadGateway),
		Err:        "conversion engine unavailable",
		Kind:       models.KindUnknown,
		cause:      err,
	}
}

// check applies the client-side rules again and resolves both bookmakers
// against the catalog. The returned request carries the catalog entries.
func (s *ConversionService) check(r models.ConversionRequest) (models.ConversionRequest, error) {
	if r.Input.Same(r.Output) {
		return r, &RequestError{Message: "You can't convert to the same bookie"}
	}
	r.Code = strings.TrimSpace(r.Code)
	if r.Code == "" {
		return r, &RequestError{Message: "kindly input the booking code"}
	}
	if r.Input.CountryShortCode == "" || r.Output.CountryShortCode == "" {
		return r, &RequestError{Message: "kindly select code source"}
	}

	in, err := s.catalog.Find(r.Input.Name, r.Input.Country)
	if err != nil {
		return r, &RequestError{Message: "unsupported bookmaker: " + r.Input.Label()}
	}
	if in.InputDisabled {
		return r, &RequestError{Message: in.Label() + " cannot be used as a conversion source"}
	}

	out, err := s.catalog.Find(r.Output.Name, r.Output.Country)
	if err != nil {
		return r, &RequestError{Message: "unsupported bookmaker: " + r.Output.Label()}
	}
	if out.OutputDisabled {
		return r, &RequestError{Message: out.Label() + " cannot be used as a conversion destination"}
	}

	if in.Same(out) {
		return r, &RequestError{Message: "You can't convert to the same bookie"}
	}

	in.InputDisabled, in.OutputDisabled = false, false
	out.InputDisabled, out.OutputDisabled = false, false
	r.Input, r.Output = in, out

	return r, nil
}
