package models

import (
	"fmt"
	"strings"
	"time"
)

// LogLevel is the severity of a log entry.
type LogLevel string

const (
	LevelFatal LogLevel = "Fatal"
	LevelError LogLevel = "Error"
	LevelWarn  LogLevel = "Warn"
	LevelInfo  LogLevel = "Info"
	LevelDebug LogLevel = "Debug"
)

// ParseLogLevel parses a severity name case-insensitively.
func ParseLogLevel(value string) (LogLevel, error) {
	switch strings.ToLower(value) {
	case "fatal":
		return LevelFatal, nil
	case "error":
		return LevelError, nil
	case "warn":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	default:
		return "", fmt.Errorf("'%s' is not a valid log level", value)
	}
}

// Log is an append-only structured event. Users never update or delete
// entries; the store expires them after the retention window.
type Log struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	User      string         `json:"user"`
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details"`
}

// LogRetention is how long log entries are kept before the store removes
// them, the equivalent of a TTL index on created_at.
const LogRetention = 7 * 24 * time.Hour
