package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Compile-time interface checks
var (
	_ LibraryLogger = (*Logger)(nil)
	_ LibraryLogger = (*ContextLogger)(nil)
)

var errLevelNotRecognized = errors.New("log level not recognized")

// Logger is the CLI logger, a thin LibraryLogger adapter over logrus.
type Logger struct {
	entry *logrus.Entry
}

// LogContext provides metadata for contextual logging
type LogContext struct {
	RunID      string // import run UUID (full or short)
	Repository string // repository path or label
	Category   string // category being processed
}

// ContextLogger carries LogContext fields on every entry.
type ContextLogger struct {
	entry *logrus.Entry
}

// NewLogger creates a logger writing text lines to stderr. level is one of
// the logrus level names; debug forces the debug level.
func NewLogger(level string, debug bool) (*Logger, error) {
	return NewLoggerTo(os.Stderr, level, debug)
}

// NewLoggerTo is NewLogger with an explicit output.
func NewLoggerTo(w io.Writer, level string, debug bool) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if debug {
		lvl = logrus.DebugLevel
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	return &Logger{entry: logrus.NewEntry(l)}, nil
}

// ParseLevel converts a case insensitive level name. An empty name is
// "info".
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return logrus.InfoLevel, nil
	case "debug", "trace":
		return logrus.DebugLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("%w: %q", errLevelNotRecognized, level)
	}
}

// Level returns the active level.
func (l *Logger) Level() logrus.Level {
	return l.entry.Logger.GetLevel()
}

func (l *Logger) Info(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

// Rejected logs a cache entry that was left out of the database.
func (l *Logger) Rejected(atom string, err error) {
	l.entry.WithFields(logrus.Fields{
		"atom":  atom,
		"error": err,
	}).Warn("rejected cache entry")
}

// UpdateSummary is what an update reports at the end.
type UpdateSummary struct {
	Path       string
	Bytes      int64
	Categories int
	Packages   int
	Versions   int
	Rejected   int
	Duration   time.Duration
}

// WriteSummary logs the result of an update as a single entry.
func (l *Logger) WriteSummary(s UpdateSummary) {
	l.entry.WithFields(logrus.Fields{
		"path":       s.Path,
		"bytes":      s.Bytes,
		"categories": s.Categories,
		"packages":   s.Packages,
		"versions":   s.Versions,
		"rejected":   s.Rejected,
		"duration":   s.Duration.Round(time.Millisecond),
	}).Info("database written")
}

// WithContext creates a ContextLogger with metadata for enriched logging.
// The RunID is truncated to 8 characters for readability.
//
// Example:
//
//	ctxLogger := logger.WithContext(log.LogContext{
//	    RunID:      runID,
//	    Repository: "gentoo",
//	    Category:   "app-editors",
//	})
//	ctxLogger.Info("imported %d records", n)
func (l *Logger) WithContext(ctx LogContext) *ContextLogger {
	fields := logrus.Fields{}
	if ctx.RunID != "" {
		id := ctx.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		fields["run"] = id
	}
	if ctx.Repository != "" {
		fields["repo"] = ctx.Repository
	}
	if ctx.Category != "" {
		fields["category"] = ctx.Category
	}
	return &ContextLogger{entry: l.entry.WithFields(fields)}
}

func (cl *ContextLogger) Info(format string, args ...any) {
	cl.entry.Infof(format, args...)
}

func (cl *ContextLogger) Debug(format string, args ...any) {
	cl.entry.Debugf(format, args...)
}

func (cl *ContextLogger) Warn(format string, args ...any) {
	cl.entry.Warnf(format, args...)
}

func (cl *ContextLogger) Error(format string, args ...any) {
	cl.entry.Errorf(format, args...)
}
