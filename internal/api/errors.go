package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is returned when the service has no record for the identity.
	// For FetchExistingPlan it is an expected branch, not a failure.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEmptyPrompt is returned, without a request, for a blank edit prompt.
	ErrEmptyPrompt = errors.New("edit prompt is empty")
	// ErrEmptyResponse is returned when a success response carries no plan.
	ErrEmptyResponse = errors.New("response contained no meal plan")
	// ErrMissingIdentity is returned, without a request, when no email is given.
	ErrMissingIdentity = errors.New("user identity is required")
)

// Error is a non-success HTTP response. Detail is the backend's message,
// shown to the user verbatim.
type Error struct {
	Operation  string
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
}

// Is lets errors.Is match the status sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// NetworkError wraps a transport failure: connection refused, DNS, timeout.
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetwork reports whether err came from the transport rather than the service.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// DetailOf returns the backend message carried by err, if any.
func DetailOf(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// parseDetail extracts FastAPI's "detail", which is a string for raised
// HTTPExceptions and a list of {loc, msg} for request validation errors.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if len(it.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(envelope.Detail)
}
