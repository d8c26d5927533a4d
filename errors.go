package imghref

import (
	"errors"
	"strconv"
	"strings"
)

// ErrAlreadyRunning is returned by AsyncHTTPResolver.Start when the
// worker pool is already running.
var ErrAlreadyRunning = errors.New("imghref: worker pool already running")

// ErrNoWorkers is returned by AsyncHTTPResolver.Start when the requested
// worker count is less than one.
var ErrNoWorkers = errors.New("imghref: worker count must be at least 1")

// ConfigError represents an error in a chain configuration entry.
type ConfigError struct {
	Index   int    // position of the entry in the resolvers list
	Field   string // offending field, if any
	Message string
	Err     error
}

// Error returns the string representation of the ConfigError.
func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString("resolver config")

	if e.Index >= 0 {
		sb.WriteString(" [")
		sb.WriteString(strconv.Itoa(e.Index))
		sb.WriteString("]")
	}

	if e.Field != "" {
		sb.WriteString(": field '")
		sb.WriteString(e.Field)
		sb.WriteString("'")
	}

	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
