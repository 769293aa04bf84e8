package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger at the given level.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fillets",
		Level:           lvl,
	})
	return l, nil
}
