package log

// LibraryLogger is the logging surface library packages depend on. It
// keeps cache backends and the service layer free of any concrete log
// sink, so the same code runs under the CLI, in tests, or silently.
type LibraryLogger interface {
	// Info logs progress (e.g., "Reading category app-editors")
	Info(format string, args ...any)

	// Debug logs diagnostics that are hidden unless debug output is on
	Debug(format string, args ...any)

	// Warn logs recoverable problems such as a skipped cache entry
	Warn(format string, args ...any)

	// Error logs failures the caller continues past
	Error(format string, args ...any)
}

// NoOpLogger discards all log messages.
type NoOpLogger struct{}

func (NoOpLogger) Info(format string, args ...any)  {}
func (NoOpLogger) Debug(format string, args ...any) {}
func (NoOpLogger) Warn(format string, args ...any)  {}
func (NoOpLogger) Error(format string, args ...any) {}
