// Package api is the HTTP client for the NutriTrack backend: account
// endpoints and the meal-plan service. It performs no retries; every call
// is a single round-trip whose failure is returned to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
)

// maxErrorBody caps how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// New constructs a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:   baseURL,
		userAgent: constants.DefaultUserAgent,
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint fills an email into a path template.
func endpoint(pattern, email string) string {
	return fmt.Sprintf(pattern, url.PathEscape(email))
}

// do performs one request. A nil in is sent without a body; a nil out
// discards the response body. Non-2xx statuses become *Error.
func (c *Client) do(ctx context.Context, operation, method, path string, in, out any) error {
	return c.doExpect(ctx, operation, method, path, 0, in, out)
}

// doExpect is do with a required success status. A want of 0 accepts any
// 2xx; any other success status then becomes *Error as well.
func (c *Client) doExpect(ctx context.Context, operation, method, path string, want int, in, out any) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	defer func() { observe(operation, start, err) }()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(constants.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Warn("Request failed", "operation", operation, "request_id", requestID, "error", err)
		return &NetworkError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &Error{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(raw),
		}
		if resp.StatusCode != http.StatusNotFound {
			logger.Warn("Request rejected",
				"operation", operation,
				"request_id", requestID,
				"status", resp.StatusCode,
				"detail", apiErr.Detail,
			)
		}
		return apiErr
	}
	if want != 0 && resp.StatusCode != want {
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.Warn("Unexpected response status",
			"operation", operation,
			"request_id", requestID,
			"status", resp.StatusCode,
			"want", want,
		)
		return &Error{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("unexpected status, want %d", want),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
