// Package engine is the HTTP client of the external conversion engine, the
// service that actually reads a booking code on one bookmaker and books the
// same selections on another.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sacsbrainz/betconverter/internal/models"
)

// UpstreamError is a non-2xx answer from the engine.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("engine status %d: %s", e.StatusCode, e.Err)
}

type Client struct {
	URL  string
	HTTP *http.Client
}

func New(url string, timeout time.Duration) *Client {
	return &Client{
		URL:  url,
		HTTP: &http.Client{Timeout: timeout},
	}
}

// Convert forwards one request. A 2xx body is returned whatever its message.
func (c *Client) Convert(ctx context.Context, r models.ConversionRequest) (*models.ConversionResponse, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		var e models.ErrorResponse
		_ = json.NewDecoder(res.Body).Decode(&e)
		return nil, &UpstreamError{StatusCode: res.StatusCode, Message: e.Message, Err: e.Error}
	}

	var out models.ConversionResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode engine response: %w", err)
	}

	return &out, nil
}
