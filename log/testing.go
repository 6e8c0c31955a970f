package log

import (
	"fmt"
	"strings"
	"sync"
)

// Levels recorded by MemoryLogger
const (
	LevelInfo  = "INFO"
	LevelDebug = "DEBUG"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// MemoryLogger captures all log messages in memory for testing.
// Safe for concurrent use.
type MemoryLogger struct {
	mu       sync.Mutex
	messages []LogMessage
}

// LogMessage represents a captured log entry
type LogMessage struct {
	Level   string
	Message string
}

// NewMemoryLogger creates a new MemoryLogger for testing
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (m *MemoryLogger) add(level, format string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (m *MemoryLogger) Info(format string, args ...any)  { m.add(LevelInfo, format, args) }
func (m *MemoryLogger) Debug(format string, args ...any) { m.add(LevelDebug, format, args) }
func (m *MemoryLogger) Warn(format string, args ...any)  { m.add(LevelWarn, format, args) }
func (m *MemoryLogger) Error(format string, args ...any) { m.add(LevelError, format, args) }

// Messages returns a copy of all captured messages
func (m *MemoryLogger) Messages() []LogMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// HasMessage checks if any message contains the given substring
func (m *MemoryLogger) HasMessage(substring string) bool {
	return m.HasMessageWithLevel("", substring)
}

// HasMessageWithLevel checks if any message at the given level contains the
// substring. An empty level matches every level.
func (m *MemoryLogger) HasMessageWithLevel(level, substring string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if (level == "" || msg.Level == level) && strings.Contains(msg.Message, substring) {
			return true
		}
	}
	return false
}

// Count returns the total number of captured messages
func (m *MemoryLogger) Count() int {
	return m.CountByLevel("")
}

// CountByLevel returns the number of messages at a level, all levels for "".
func (m *MemoryLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.messages {
		if level == "" || msg.Level == level {
			n++
		}
	}
	return n
}

// Clear removes all captured messages
func (m *MemoryLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}

// String returns all messages, one per line (useful when a test fails)
func (m *MemoryLogger) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sb strings.Builder
	for i, msg := range m.messages {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, msg.Level, msg.Message)
	}
	return sb.String()
}
