// Package models defines the request and response data structures exchanged
// between the converter client, the catalog/gateway server and the external
// conversion engine.
package models

import "github.com/sacsbrainz/betconverter/internal/catalog"

const (
	// MessageSuccess is the message value of every successful response.
	MessageSuccess = "success"

	// MessageError is the message value the gateway uses for its own failures.
	MessageError = "error"
)

// Envelope wraps every successful response body.
type Envelope[T any] struct {
	// Message is "success" on success; anything else is a business error.
	Message string `json:"message"`

	// Data carries the payload.
	Data T `json:"data"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`

	// Error is the detail text clients inspect to classify the failure.
	Error string `json:"error"`

	// Kind tags the failure so clients need not sniff Error prefixes.
	// Absent in responses from servers that do not classify.
	Kind ErrorKind `json:"kind,omitempty"`
}

// ConversionRequest asks for a booking code to be moved from one bookmaker
// to another.
type ConversionRequest struct {
	Code   string            `json:"code"`
	Input  catalog.Bookmaker `json:"input"`
	Output catalog.Bookmaker `json:"output"`

	// Remove asks the engine to drop markets the destination does not offer.
	Remove bool `json:"remove"`
}

// ConversionResult is returned by the conversion endpoint on success.
type ConversionResult struct {
	ShareCode string `json:"shareCode"`
	ShareURL  string `json:"shareURL"`
}

// BookiesResponse is the body of GET /bookies.
type BookiesResponse = Envelope[[]catalog.Bookmaker]

// ConversionResponse is the success body of POST /.
type ConversionResponse = Envelope[ConversionResult]
