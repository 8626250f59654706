package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/api"
	"github.com/ChandelAnish/NutriTrack/internal/cache/sqlite"
	"github.com/ChandelAnish/NutriTrack/internal/config"
	"github.com/ChandelAnish/NutriTrack/internal/lock"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
	"github.com/ChandelAnish/NutriTrack/internal/validation"
)

// UserMessage turns an error into the text shown to the user. Messages
// from the backend are passed through verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, reconciler.ErrUnauthenticated):
		return "You are not signed in. Run 'nutritrack login' first."
	case errors.Is(err, api.ErrEmptyPrompt):
		return "Describe the change you want to make to the plan."
	case errors.Is(err, reconciler.ErrNoPlan):
		return "There is no meal plan to edit yet."
	case errors.Is(err, api.ErrEmptyResponse):
		return "The server did not return a meal plan. Try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to respond. Try again."
	case errors.Is(err, lock.ErrLocked):
		return "Another nutritrack session is already running."
	case errors.Is(err, config.ErrMissingServerURL), errors.Is(err, sqlite.ErrNotInitialized):
		return err.Error()
	case errors.Is(err, validation.ErrInvalid):
		return strings.TrimPrefix(err.Error(), validation.ErrInvalid.Error()+": ")
	case api.IsNetwork(err):
		return "Could not reach the NutriTrack server. Check your connection and try again."
	}

	if detail, ok := api.DetailOf(err); ok {
		return detail
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return "The server rejected your credentials."
	}
	return err.Error()
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", UserMessage(err))
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
