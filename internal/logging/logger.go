// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging owns the process-wide logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// L is the package-level logger. Callers should use the helper functions
// below or derive a child logger with L.With.
var L = clog.New(os.Stderr)

// Options configures Setup.
type Options struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string
	// Format is auto, text, json or logfmt. Auto picks text on a terminal
	// and json otherwise.
	Format string
	Output io.Writer
}

// Setup replaces L with a logger built from opts.
func Setup(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	L = l
	return nil
}

// New builds a logger from opts without touching L.
func New(opts Options) (*clog.Logger, error) {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}
	level := clog.InfoLevel
	if opts.Level != "" {
		lvl, err := clog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = lvl
	}

	l := clog.NewWithOptions(w, clog.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "czujnik",
	})
	switch resolveFormat(opts.Format, w) {
	case "json":
		l.SetFormatter(clog.JSONFormatter)
	case "logfmt":
		l.SetFormatter(clog.LogfmtFormatter)
	default:
		l.SetFormatter(clog.TextFormatter)
		l.SetStyles(levelStyles())
	}
	return l, nil
}

// resolveFormat turns "auto" into a concrete format for w.
func resolveFormat(format string, w io.Writer) string {
	switch strings.ToLower(format) {
	case "text", "json", "logfmt":
		return strings.ToLower(format)
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "json"
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
