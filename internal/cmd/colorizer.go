package cmd

import (
	"io"

	"github.com/unrss/gitenv/internal/logging"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// colorizer wraps text in ANSI codes when the output is a color terminal.
type colorizer struct {
	enabled bool
}

// newColorizer uses the same detection as the console logger so show and
// config agree with the log lines about color.
func newColorizer(w io.Writer) *colorizer {
	return &colorizer{enabled: logging.ColorEnabled(w)}
}

func (c *colorizer) paint(code, s string) string {
	if !c.enabled {
		return s
	}
	return code + s + ansiReset
}

func (c *colorizer) green(s string) string  { return c.paint(ansiGreen, s) }
func (c *colorizer) yellow(s string) string { return c.paint(ansiYellow, s) }
func (c *colorizer) bold(s string) string   { return c.paint(ansiBold, s) }
func (c *colorizer) dim(s string) string    { return c.paint(ansiDim, s) }
func (c *colorizer) cyan(s string) string   { return c.paint(ansiCyan, s) }
