package api

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "nutritrack_client"
	requestsName     = "requests_total"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      requestsName,
			Help:      "Requests to the meal-plan service by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of requests to the meal-plan service.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)
)

const (
	outcomeSuccess      = "success"
	outcomeNotFound     = "not_found"
	outcomeUnauthorized = "unauthorized"
	outcomeClientError  = "client_error"
	outcomeServerError  = "server_error"
	outcomeNetworkError = "network_error"
	outcomeDecodeError  = "decode_error"
	outcomeCanceled     = "canceled"
)

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return outcomeCanceled
	}
	if errors.Is(err, ErrNotFound) {
		return outcomeNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return outcomeUnauthorized
	}
	if IsNetwork(err) {
		return outcomeNetworkError
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 500 {
			return outcomeServerError
		}
		return outcomeClientError
	}
	return outcomeDecodeError
}

func observe(operation string, start time.Time, err error) {
	requestsTotal.WithLabelValues(operation, outcomeOf(err)).Inc()
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RequestStats is the number of requests for one operation that ended with
// one outcome.
type RequestStats struct {
	Operation string
	Outcome   string
	Count     int
}

// RequestSummary reads the client's request counters from g, ordered by
// operation and then outcome. Operations never called are absent.
func RequestSummary(g prometheus.Gatherer) ([]RequestStats, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	name := prometheus.BuildFQName(metricsNamespace, "", requestsName)
	var stats []RequestStats
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			s := RequestStats{Count: int(m.GetCounter().GetValue())}
			if s.Count == 0 {
				continue
			}
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "operation":
					s.Operation = lp.GetValue()
				case "outcome":
					s.Outcome = lp.GetValue()
				}
			}
			stats = append(stats, s)
		}
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Operation != stats[j].Operation {
			return stats[i].Operation < stats[j].Operation
		}
		return stats[i].Outcome < stats[j].Outcome
	})
	return stats, nil
}
