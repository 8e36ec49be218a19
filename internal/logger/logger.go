// Package logger wraps the standard log.Logger so the CLI and the progress
// reporter share one configured output.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger wraps log.Logger.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to stdout.
func New() *Logger {
	return &Logger{Logger: log.New(os.Stdout, "", log.LstdFlags)}
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer) *Logger {
	return &Logger{Logger: log.New(w, "", log.LstdFlags)}
}
