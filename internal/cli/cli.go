// Package cli renders sdelite output for terminals and pipes: styled text,
// cargo-style error reports, a console progress observer and plain tables.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// OutputMode is either styled terminal output or plain text.
type OutputMode int

const (
	ModeTTY OutputMode = iota
	ModePlain
)

// Config is where diagnostics go and whether they are styled.
type Config struct {
	Mode   OutputMode
	Writer io.Writer
}

// Detect picks the mode for diagnostics written to f. Styling needs a
// terminal and is switched off by NO_COLOR (https://no-color.org/) or
// TERM=dumb.
func Detect(f *os.File) *Config {
	cfg := &Config{Mode: ModePlain, Writer: f}
	if IsTerminal(f) && os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb" {
		cfg.Mode = ModeTTY
	}
	return cfg
}

func (c *Config) IsTTY() bool { return c.Mode == ModeTTY }

// IsTerminal reports whether f is attached to a terminal, Cygwin and MSYS
// pseudo terminals included.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var current *Config

// Default is the process-wide config, detected from stderr on first use.
func Default() *Config {
	if current == nil {
		current = Detect(os.Stderr)
	}
	return current
}

// SetDefault replaces the process-wide config. Tests use it to force plain
// output.
func SetDefault(cfg *Config) { current = cfg }

// EnableColors reports whether style functions emit escape sequences.
func EnableColors() bool { return Default().IsTTY() }
