// Package convert is the client side of the converter: an HTTP client for
// the catalog and conversion endpoints, and the Form that collects a
// booking code plus source/destination bookmakers, validates them, submits
// one request at a time and classifies failures into user-facing messages.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sacsbrainz/betconverter/internal/catalog"
	"github.com/sacsbrainz/betconverter/internal/models"
)

// APIError is a non-2xx response from the converter API.
type APIError struct {
	StatusCode int
	Message    string
	// Err is the detail text of the response, inspected for known prefixes.
	Err  string
	Kind models.ErrorKind
}

func (e *APIError) Error() string {
	if e.Err != "" {
		return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the converter API. No timeout is set on the default
// transport; callers bound requests through the context if they need to.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, logger *zap.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListBookmakers fetches the catalog from GET <base>/bookies.
func (c *Client) ListBookmakers(ctx context.Context) ([]catalog.Bookmaker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.baseURL, "/")+"/bookies", nil)
	if err != nil {
		return nil, err
	}

	var out models.BookiesResponse
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("list bookmakers: %w", err)
	}

	if out.Message != models.MessageSuccess {
		return nil, fmt.Errorf("list bookmakers: %s", out.Message)
	}

	return out.Data, nil
}

// Convert posts one conversion request to the base URL. A 2xx response is
// returned as-is, including bodies whose message is not "success".
func (c *Client) Convert(ctx context.Context, r models.ConversionRequest) (*models.ConversionResponse, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out models.ConversionResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) do(req *http.Request, dst any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
	}
	defer res.Body.Close()

	c.logger.Debug("api response",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Int("status", res.StatusCode),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}

		var body models.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
			if body.Message != "" {
				apiErr.Message = body.Message
			}
			apiErr.Err = body.Error
			apiErr.Kind = body.Kind
		}
		return apiErr
	}

	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
