// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// logLevel picks the level for the flags: --quiet wins over --verbose.
func logLevel(verbose, quiet bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.WarnLevel
	}
}

// newLogger returns a charmbracelet logger writing to w. It is used as the
// slog handler, so call sites stay on log/slog.
func newLogger(w io.Writer, level log.Level) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "npx",
		Level:  level,
	})
	return slog.New(handler)
}
