// Package debuglog writes JSON debug traces to a file when --debug is set.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "resched-debug.log"

var (
	mu     sync.Mutex
	file   *os.File
	logger = zerolog.Nop()
)

// Init enables debug logging to path. With enabled false the logger stays a no-op.
func Init(enabled bool, path string) error {
	if !enabled {
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	mu.Lock()
	file = f
	mu.Unlock()
	setOutput(f)

	l := L()
	l.Info().Str("log_file", path).Msg("debug start")
	return nil
}

// setOutput points the logger at w. Tests use it with a buffer.
func setOutput(w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	mu.Lock()
	logger = zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	mu.Unlock()
}

// Close flushes the end marker and closes the log file.
func Close() {
	mu.Lock()
	f := file
	file = nil
	mu.Unlock()

	if f == nil {
		return
	}
	l := L()
	l.Info().Msg("debug end")
	_ = f.Close()

	mu.Lock()
	logger = zerolog.Nop()
	mu.Unlock()
}

// L returns the current logger. It is a no-op logger unless Init enabled it.
func L() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Key logs a key press.
func Key(key string) {
	l := L()
	l.Debug().Str("event", "key_press").Str("key", key).Send()
}

// Range logs a range transition of the host.
func Range(action, key string) {
	l := L()
	l.Debug().Str("event", "range").Str("action", action).Str("range", key).Send()
}

// Fetch logs the outcome of an events fetch.
func Fetch(key string, count int, stale bool, err error) {
	l := L()
	e := l.Debug().Str("event", "fetch").Str("range", key).Int("count", count).Bool("stale", stale)
	if err != nil {
		e = e.Err(err)
	}
	e.Send()
}

// Error logs an error with context.
func Error(context string, err error) {
	l := L()
	l.Error().Str("context", context).Err(err).Send()
}
