package api

import (
	"net/http"
	"time"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
)

type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := req.Header.Get(constants.RequestIDHeader)
	logger.Debug("HTTP request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID,
		"content_length", req.ContentLength,
	)

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		logger.Debug("HTTP request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"request_id", requestID,
			"error", err,
		)
		return nil, err
	}

	logger.Debug("HTTP response",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID,
		"status_code", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}
