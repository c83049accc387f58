// Package client talks to the booking API. The wizard submitters in this
// package are how terminal and test sessions deliver a finished form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hplandscaping/booking-platform/internal/bookings"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/quotes"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// DefaultTimeout bounds every request unless WithHTTPClient overrides it.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api returned %d: %s", e.Status, e.Message)
}

// Client is an HTTP client for the booking API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitBooking posts an appointment request.
func (c *Client) SubmitBooking(ctx context.Context, req bookings.Request) (*bookings.Confirmation, error) {
	var out bookings.Confirmation
	if err := c.do(ctx, http.MethodPost, "/api/booking", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitQuote posts a commercial quote request.
func (c *Client) SubmitQuote(ctx context.Context, req quotes.Request) (*quotes.Confirmation, error) {
	var out quotes.Confirmation
	if err := c.do(ctx, http.MethodPost, "/api/quote", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvailableTimes fetches the time slots offered for date (YYYY-MM-DD).
func (c *Client) AvailableTimes(ctx context.Context, date string) (*bookings.AvailabilityResponse, error) {
	var out bookings.AvailabilityResponse
	path := "/api/booking?" + url.Values{"date": {date}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Services lists the service catalog.
func (c *Client) Services(ctx context.Context) ([]catalog.Service, error) {
	var out []catalog.Service
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		c.logger.Warn("api request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
