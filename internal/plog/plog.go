// Package plog wraps the standard library's *log.Logger with a Verbose
// gate, replacing the teacher's scattered direct log.Printf calls
// (pkg/game/chunk_manager.go) with a single entry point: Warnf always
// fires (overflow and invalid-config conditions), Debugf only fires when
// the owning PlanetConfig has Verbose set (recoverable, expected
// conditions a developer only wants to see on request).
package plog

import (
	"log"
	"os"
)

// Logger gates debug output behind Verbose while always emitting warnings.
type Logger struct {
	*log.Logger
	Verbose bool
}

// New creates a Logger writing to os.Stderr with the given prefix.
func New(prefix string, verbose bool) *Logger {
	return &Logger{
		Logger:  log.New(os.Stderr, prefix, log.LstdFlags),
		Verbose: verbose,
	}
}

// Debugf logs a recoverable or expected condition, only when Verbose.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Printf("DEBUG "+format, args...)
}

// Warnf logs an overflow, invalid-config, or otherwise noteworthy
// condition unconditionally.
func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("WARN "+format, args...)
}
