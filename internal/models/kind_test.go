package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sacsbrainz/betconverter/internal/models"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		text string
		want models.ErrorKind
	}{
		{"Unsupported bet type: HT/FT", models.KindUnsupportedBet},
		{"Some markets are not available: Arsenal vs Chelsea", models.KindMarketsUnavailable},
		{"invalid event data, no market there", models.KindNoMarket},
		{"some markets are not available:", models.KindUnknown},
		{"", models.KindUnknown},
		{"booking code not found", models.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.want, models.KindOf(tt.text))
		})
	}
}

func TestErrorKindValid(t *testing.T) {
	require.True(t, models.KindNoMarket.Valid())
	require.False(t, models.ErrorKind("timeout").Valid())
	require.False(t, models.ErrorKind("").Valid())
}
