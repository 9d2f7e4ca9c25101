package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitkit/internal/logger"
)

var (
	// ErrHabitNotFound is returned by lookups that resolve a habit by ID, prefix or title.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrCategoryNotFound is returned by lookups that resolve a category by ID or name.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidInput marks user input rejected before it reaches the store.
	ErrInvalidInput = errors.New("invalid input")
)

// Invalid wraps ErrInvalidInput with a description of the offending field.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
