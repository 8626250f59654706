package api

import (
	"fmt"
	"net/http"
	"time"
)

// Option mutates the Client during New().
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithHTTPTimeout bounds each request, including reading the body.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging logs every request and response at debug level.
// Bodies are not logged since login requests carry the password.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}
