// Package logging builds the structured logger used by the command line tools.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Options configures [New].
type Options struct {
	Prefix     string
	Level      string
	Timestamps bool
}

// New returns a [*slog.Logger] writing human readable lines to w through a
// charmbracelet handler. Level is parsed with [log.ParseLevel]; an empty level
// means info.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level := log.InfoLevel

	if opts.Level != "" {
		var err error
		if level, err = log.ParseLevel(opts.Level); err != nil {
			return nil, err
		}
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          opts.Prefix,
		Level:           level,
		ReportTimestamp: opts.Timestamps,
	})

	return slog.New(handler), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
