// Package logging builds the logfmt loggers shared by the CLI and the
// session.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logfmt logger writing to w, filtered at the named level
// ("debug", "info", "warn", "error" or "none").
func New(w io.Writer, lvl string) (kitlog.Logger, error) {
	opt, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	return kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC), nil
}

// Stderr is New(os.Stderr, lvl), falling back to info on a bad level.
func Stderr(lvl string) kitlog.Logger {
	logger, err := New(os.Stderr, lvl)
	if err != nil {
		logger, _ = New(os.Stderr, "info")
	}
	return logger
}

// Nop discards everything.
func Nop() kitlog.Logger {
	return kitlog.NewNopLogger()
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none", "off":
		return level.AllowNone(), nil
	}
	return nil, fmt.Errorf("unknown log level %q", lvl)
}
