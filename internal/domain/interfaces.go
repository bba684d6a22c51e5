package domain

import "time"

// ConfigProvider defines operations for reading and writing configuration.
type ConfigProvider interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// GetAll returns all configuration values.
	GetAll() (map[string]string, error)

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error
}

// Logger defines logging operations.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}

// Invocation is one recorded run of a routed command.
type Invocation struct {
	ID         string
	Command    string // dispatch key (first token)
	Route      string // name of the matched route, empty when nothing matched
	Args       []string
	ExitStatus int
	StartedAt  time.Time
	Duration   time.Duration
}

// InvocationFilter narrows a journal listing.
type InvocationFilter struct {
	Command string
	Since   *time.Time
	Limit   int
}

// InvocationStore persists invocations.
type InvocationStore interface {
	// Record stores a finished invocation.
	Record(inv Invocation) error

	// List returns invocations matching the filter, newest first.
	List(filter InvocationFilter) ([]Invocation, error)

	// Close closes the store connection.
	Close() error
}
