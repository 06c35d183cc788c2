package restorerevert

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	loggerMu sync.RWMutex
	logger   = zerolog.Nop()
)

// NewLogger returns a plain-text console logger for the diagnostics stream.
// Every event carries lib=restorerevert so it can be told apart from the
// report lines written to the same stderr.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Str("lib", "restorerevert").
		Logger()
}

// ParseLogLevel parses a --log-level value such as "warn" or " DEBUG ".
func ParseLogLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.NoLevel, errors.New("empty log level")
	}
	return zerolog.ParseLevel(s)
}

// Logger returns the package logger. It discards everything until SetLogger is called.
func Logger() *zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	l := logger
	return &l
}

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}
