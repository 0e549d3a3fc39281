// Package log provides a small leveled key/value logger for slotcal.
//
// Scheduling is tolerant by design: unplaceable events are skipped and
// persistence failures are reported without retry, so those paths need a
// logger rather than an error return. Output goes to stderr by default.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync"
)

// Level is a log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var (
	mu       sync.Mutex
	logger   = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
	minLevel = LevelInfo
)

// SetLevel sets the minimum level that will be emitted.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// SetOutput redirects log output. Used by tests and by the CLI's
// --quiet flag (io.Discard).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = stdlog.New(w, "", stdlog.LstdFlags)
}

// Debug logs at debug level with optional key/value pairs.
func Debug(msg string, kv ...any) {
	emit(LevelDebug, msg, kv...)
}

// Info logs at info level with optional key/value pairs.
func Info(msg string, kv ...any) {
	emit(LevelInfo, msg, kv...)
}

// Warn logs at warn level with optional key/value pairs.
func Warn(msg string, kv ...any) {
	emit(LevelWarn, msg, kv...)
}

// Error logs an error with optional key/value pairs. The error is
// rendered as an err=... pair ahead of the rest.
func Error(msg string, err error, kv ...any) {
	emit(LevelError, msg, append([]any{"err", err}, kv...)...)
}

func emit(level Level, msg string, kv ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled(level) {
		return
	}
	logger.Println("[" + string(level) + "] " + msg + formatKVs(kv...))
}

func enabled(level Level) bool {
	switch minLevel {
	case LevelDebug:
		return true
	case LevelInfo:
		return level != LevelDebug
	case LevelWarn:
		return level == LevelWarn || level == LevelError
	case LevelError:
		return level == LevelError
	default:
		return true
	}
}

// formatKVs renders pairs as " key=value". A trailing unpaired value is
// ignored rather than reported.
func formatKVs(kv ...any) string {
	out := ""
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		out += " " + key + "=" + fmt.Sprint(kv[i+1])
	}
	return out
}
