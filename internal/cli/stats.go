package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ChandelAnish/NutriTrack/internal/api"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
)

// ReportRequests prints the server requests made during this invocation,
// one line per operation and outcome. It prints nothing if none were made.
func (c *Context) ReportRequests(g prometheus.Gatherer) error {
	stats, err := api.RequestSummary(g)
	if err != nil {
		return fmt.Errorf("failed to read request metrics: %w", err)
	}
	if len(stats) == 0 {
		return nil
	}

	c.Println()
	c.Println("Server requests:")
	for _, s := range stats {
		c.Printf("  %-16s %-14s %d\n", s.Operation, s.Outcome, s.Count)
	}
	return nil
}

// LogRequests writes the same summary to the debug log.
func LogRequests(g prometheus.Gatherer) {
	stats, err := api.RequestSummary(g)
	if err != nil {
		logger.Debug("Request metrics unavailable", "error", err)
		return
	}
	for _, s := range stats {
		logger.Debug("Server requests", "operation", s.Operation, "outcome", s.Outcome, "count", s.Count)
	}
}
