package ports

// Logger defines the structured logging interface used across the module.
type Logger interface {
	// Debug logs a debug message with key-value pairs.
	Debug(msg string, keysAndValues ...interface{})
	// Info logs an informational message with key-value pairs.
	Info(msg string, keysAndValues ...interface{})
	// Warn logs a warning message with key-value pairs.
	Warn(msg string, keysAndValues ...interface{})
	// Error logs an error message with key-value pairs.
	Error(msg string, keysAndValues ...interface{})
	// Close flushes and releases any logging resources.
	Close() error
}
