package convert

import (
	"strings"

	"github.com/sacsbrainz/betconverter/internal/catalog"
	"github.com/sacsbrainz/betconverter/internal/models"
)

// ShareLink returns the link a user copies for a converted code. msport
// share URLs are rebuilt from the code and the destination country; the code
// is appended as the engine returned it.
func ShareLink(res models.ConversionResult, output catalog.Bookmaker) string {
	if strings.EqualFold(output.Name, "msport") {
		return "https://www.msport.com/" + output.CountryShortCode + "?code=" + res.ShareCode
	}
	return res.ShareURL
}
