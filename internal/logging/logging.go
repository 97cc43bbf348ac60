// Package logging builds the zerolog logger used by gitenv commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New creates a logger writing to w.
//
// The console format omits timestamps since CI runners prefix every line
// with their own. Colors are used only when w is a terminal and NO_COLOR is
// unset. An empty level means info.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}

	switch strings.ToLower(format) {
	case "", FormatConsole:
		out := zerolog.ConsoleWriter{
			Out:          w,
			NoColor:      !ColorEnabled(w),
			PartsExclude: []string{zerolog.TimestampFieldName},
		}
		return zerolog.New(out).Level(lvl), nil
	case FormatJSON:
		return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format: %s (supported: %s, %s)", format, FormatConsole, FormatJSON)
	}
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
}
