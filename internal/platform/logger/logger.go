// Package logger holds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base zerolog.Logger
	set  bool
)

// Init configures the global JSON logger.
// level は debug|info|warn|error、pretty が true の場合はコンソール向けに整形して出力します。
func Init(level string, pretty bool) {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	SetOutput(w, parseLevel(level))
}

// SetOutput replaces the global logger with one writing to w.
func SetOutput(w io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := zerolog.New(w).With().Timestamp().Logger().Level(level)

	mu.Lock()
	base = l
	set = true
	mu.Unlock()
}

// L returns the global logger. Without Init it logs at info level to stdout.
func L() *zerolog.Logger {
	mu.RLock()
	if set {
		l := base
		mu.RUnlock()
		return &l
	}
	mu.RUnlock()

	Init("info", false)
	return L()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
