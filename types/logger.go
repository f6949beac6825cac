package types

// Logger defines methods for structured logging.
//
// All methods accept alternating key-value pairs for structured fields, which
// matches log/slog, charmbracelet/log and zap's SugaredLogger.
//
// The layout core never terminates the process, so there is no Fatal level.
type Logger interface {
	// Debug logs a diagnostic message. The controller only emits debug output
	// when the debug option is enabled.
	Debug(msg string, keysAndValues ...any)

	// Info logs an informational message.
	Info(msg string, keysAndValues ...any)

	// Warn logs a recoverable problem, such as malformed breakpoint input.
	Warn(msg string, keysAndValues ...any)

	// Error logs a failure that did not stop layout (e.g. publish errors).
	Error(msg string, keysAndValues ...any)
}
