package service

import (
	"context"

	"github.com/sacsbrainz/betconverter/internal/catalog"
	"github.com/sacsbrainz/betconverter/internal/models"
)

// Engine forwards a conversion request to the external conversion engine.
type Engine interface {
	Convert(ctx context.Context, r models.ConversionRequest) (*models.ConversionResponse, error)
}

// ConverterIface is what the HTTP handlers need from the service layer.
type ConverterIface interface {
	Bookmakers() []catalog.Bookmaker
	Convert(ctx context.Context, r models.ConversionRequest) (*models.ConversionResponse, error)
	PingContext(ctx context.Context) error
}
