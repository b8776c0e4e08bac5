package convert

import (
	"errors"

	"github.com/sacsbrainz/betconverter/internal/models"
)

// FallbackMessage is shown when a failure carries no usable detail.
const FallbackMessage = "Something went wrong"

// noMarketHint is appended to "no market" failures.
const noMarketHint = ": consider converting to msport first because it displays the exact games not available and ability to remove them, then convert from msport to your desired bookie"

// Classify turns a submission error into the message shown to the user and
// its kind. A kind tag sent by the server wins; otherwise the detail text is
// matched against the known engine prefixes.
func Classify(err error) (string, models.ErrorKind) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Err == "" {
		return FallbackMessage, models.KindUnknown
	}

	kind := apiErr.Kind
	if !kind.Valid() {
		kind = models.KindOf(apiErr.Err)
	}

	if kind == models.KindNoMarket {
		return apiErr.Err + noMarketHint, kind
	}

	return apiErr.Err, kind
}
