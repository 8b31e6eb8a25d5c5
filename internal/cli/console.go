package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/hlop3z/sdelite/internal/progress"
)

const (
	barWidth = 30

	// Redraw intervals for the progress line.
	ttyInterval   = 80 * time.Millisecond
	plainInterval = 2 * time.Second
)

// Console is a progress.Observer writing to a terminal or a pipe. On a
// terminal it redraws a single progress line in place; otherwise it prints
// throttled "[current/total] label" lines so CI logs stay readable.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	tty      bool
	now      func() time.Time
	lastDraw time.Time
	lineLen  int // visible length of the in-place line, 0 if none
}

var _ progress.Observer = (*Console)(nil)

// NewConsole returns a console observer. tty selects in-place redraws.
func NewConsole(w io.Writer, tty bool) *Console {
	return &Console{w: w, tty: tty, now: time.Now}
}

// SetPhase prints a phase header.
func (c *Console) SetPhase(p progress.Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLine()
	if p == progress.Complete {
		fmt.Fprintf(c.w, "%s %s\n", Success("✓"), Done("Complete"))
		return
	}
	fmt.Fprintf(c.w, "%s %s\n", Progress("==>"), Header(p.String()))
}

// SetStatus prints the status line.
func (c *Console) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLine()
	fmt.Fprintf(c.w, "    %s\n", status)
}

// SetProgress redraws the progress line, throttled. The final update of a
// bar (current == total) is always drawn.
func (c *Console) SetProgress(current, total uint64, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	interval := plainInterval
	if c.tty {
		interval = ttyInterval
	}
	now := c.now()
	final := total > 0 && current >= total
	if !final && !c.lastDraw.IsZero() && now.Sub(c.lastDraw) < interval {
		return
	}
	c.lastDraw = now

	if !c.tty {
		if total > 0 {
			fmt.Fprintf(c.w, "    [%d/%d] %s\n", current, total, label)
		} else {
			fmt.Fprintf(c.w, "    [%d] %s\n", current, label)
		}
		return
	}

	line := progressLine(current, total, label)
	c.clearLine()
	fmt.Fprint(c.w, "\r"+line)
	c.lineLen = len([]rune(line))
	if final {
		fmt.Fprintln(c.w)
		c.lineLen = 0
		c.lastDraw = time.Time{}
	}
}

// Log prints a dimmed log line.
func (c *Console) Log(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLine()
	fmt.Fprintf(c.w, "    %s\n", Dim(msg))
}

// Write lets the console serve as the slog handler output without tearing
// the progress line.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLine()
	return c.w.Write(p)
}

// clearLine erases an in-place progress line. Caller holds mu.
func (c *Console) clearLine() {
	if c.lineLen == 0 {
		return
	}
	fmt.Fprint(c.w, "\r"+strings.Repeat(" ", c.lineLen)+"\r")
	c.lineLen = 0
}

// progressLine renders " 42% [████░░░░] label", or "label" alone when
// the total is unknown.
func progressLine(current, total uint64, label string) string {
	f := progress.Fraction(current, total)
	if f < 0 {
		return fmt.Sprintf("    %s", label)
	}
	filled := int(f * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("    %s [%s] %s", Progress(fmt.Sprintf("%3.0f%%", f*100)), bar, label)
}
