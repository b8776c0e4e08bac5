// Package catalog holds the fixed list of bookmaker/country pairings the
// converter supports. A Catalog never changes after it is built: every read
// returns a copy, so the process-wide list cannot be mutated by callers.
package catalog

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// ErrNotFound is returned when no bookmaker matches a lookup.
var ErrNotFound = errors.New("bookmaker not found")

// ErrEmpty is returned when a catalog is built without entries.
var ErrEmpty = errors.New("catalog has no bookmakers")

// Bookmaker is one conversion-eligible bookmaker/country pairing.
type Bookmaker struct {
	// Name identifies the bookmaker family, e.g. "sportybet" or "msport".
	Name string `json:"name" yaml:"name" validate:"required"`

	// Country is the display name, e.g. "Nigeria" or "Global".
	Country string `json:"country" yaml:"country" validate:"required"`

	// CountryShortCode is used when building share URLs.
	CountryShortCode string `json:"countryShortCode" yaml:"countryShortCode" validate:"required"`

	// InputDisabled forbids using this entry as a conversion source.
	InputDisabled bool `json:"inputDisabled" yaml:"inputDisabled"`

	// OutputDisabled forbids using this entry as a conversion destination.
	OutputDisabled bool `json:"outputDisabled" yaml:"outputDisabled"`
}

// Label renders the entry the way the bookmaker pickers show it. The
// country is left out for global bookmakers.
func (b Bookmaker) Label() string {
	if strings.EqualFold(b.Country, "global") {
		return b.Name
	}
	return b.Name + " " + b.Country
}

// Same reports whether b and o denote the same bookmaker and country.
func (b Bookmaker) Same(o Bookmaker) bool {
	return b.Name == o.Name && b.Country == o.Country
}

// Catalog is an immutable, ordered list of bookmakers.
type Catalog struct {
	entries []Bookmaker
}

// New builds a catalog from entries, keeping their order. Duplicated names
// with different countries are valid.
func New(entries []Bookmaker) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	own := make([]Bookmaker, len(entries))
	copy(own, entries)

	return &Catalog{entries: own}, nil
}

// List returns every bookmaker in declaration order.
func (c *Catalog) List() []Bookmaker {
	out := make([]Bookmaker, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Sources returns the entries that may be chosen as a conversion source.
func (c *Catalog) Sources() []Bookmaker {
	return lo.Filter(c.entries, func(b Bookmaker, _ int) bool {
		return !b.InputDisabled
	})
}

// Destinations returns the entries that may be chosen as a conversion destination.
func (c *Catalog) Destinations() []Bookmaker {
	return lo.Filter(c.entries, func(b Bookmaker, _ int) bool {
		return !b.OutputDisabled
	})
}

// Find looks up a bookmaker by name and country, ignoring case.
func (c *Catalog) Find(name, country string) (Bookmaker, error) {
	b, ok := lo.Find(c.entries, func(b Bookmaker) bool {
		return strings.EqualFold(b.Name, name) && strings.EqualFold(b.Country, country)
	})
	if !ok {
		return Bookmaker{}, ErrNotFound
	}
	return b, nil
}

// FindByName returns every entry of one bookmaker family, ignoring case.
func (c *Catalog) FindByName(name string) []Bookmaker {
	return lo.Filter(c.entries, func(b Bookmaker, _ int) bool {
		return strings.EqualFold(b.Name, name)
	})
}
