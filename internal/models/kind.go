package models

import "strings"

// ErrorKind tags a conversion failure reported by the engine.
type ErrorKind string

const (
	// KindUnsupportedBet means the booking contains a bet type the
	// destination cannot represent.
	KindUnsupportedBet ErrorKind = "unsupported_bet"

	// KindMarketsUnavailable means some markets are missing on the
	// destination; a retry with remove=true drops them.
	KindMarketsUnavailable ErrorKind = "markets_unavailable"

	// KindNoMarket means an event carries no market at all on the destination.
	KindNoMarket ErrorKind = "no_market"

	// KindUnknown covers everything else.
	KindUnknown ErrorKind = "unknown"
)

// Error text prefixes the conversion engine is known to produce.
const (
	PrefixUnsupportedBet     = "Unsupported bet"
	PrefixMarketsUnavailable = "Some markets are not available:"
	PrefixNoMarket           = "invalid event data, no market there"
)

// KindOf classifies engine error text by its prefix.
func KindOf(text string) ErrorKind {
	switch {
	case strings.HasPrefix(text, PrefixUnsupportedBet):
		return KindUnsupportedBet
	case strings.HasPrefix(text, PrefixMarketsUnavailable):
		return KindMarketsUnavailable
	case strings.HasPrefix(text, PrefixNoMarket):
		return KindNoMarket
	default:
		return KindUnknown
	}
}

// Valid reports whether k is one of the known kinds.
func (k ErrorKind) Valid() bool {
	switch k {
	case KindUnsupportedBet, KindMarketsUnavailable, KindNoMarket, KindUnknown:
		return true
	}
	return false
}
