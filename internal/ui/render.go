package ui

import (
	"fmt"
	"strings"

	"github.com/hlop3z/sdelite/internal/progress"
)

const (
	gaugeWidth  = 40
	maxLogLines = 500
)

var phases = []progress.Phase{
	progress.Checking,
	progress.Downloading,
	progress.Extracting,
	progress.Converting,
	progress.Complete,
}

// state is everything the screen shows. Observer calls mutate it; the
// event loop renders it.
type state struct {
	phase   progress.Phase
	started bool // a phase has been announced
	status  string
	current uint64
	total   uint64
	label   string
	logs    []string
}

func (s *state) appendLog(line string) {
	s.logs = append(s.logs, line)
	if over := len(s.logs) - maxLogLines; over > 0 {
		s.logs = append(s.logs[:0], s.logs[over:]...)
	}
}

// phaseText renders the phase strip: done phases checked, the current one
// highlighted, later ones muted.
func phaseText(s state) string {
	parts := make([]string, 0, len(phases))
	for _, p := range phases {
		switch {
		case !s.started || p > s.phase:
			parts = append(parts, TagMuted+"○ "+p.String()+TagReset)
		case p < s.phase || p == progress.Complete:
			parts = append(parts, TagSuccess+"✓ "+p.String()+TagReset)
		default:
			parts = append(parts, TagLabel+"● "+p.String()+TagReset)
		}
	}
	return strings.Join(parts, "  ")
}

func statusText(s state) string {
	if s.status == "" {
		return TagMuted + "waiting" + TagReset
	}
	return TagValue + escape(s.status) + TagReset
}

// gaugeText renders a fixed-width bar, or the label alone when the total
// is unknown.
func gaugeText(s state) string {
	f := progress.Fraction(s.current, s.total)
	if f < 0 {
		return escape(s.label)
	}
	filled := int(f * gaugeWidth)
	return fmt.Sprintf("%s%s%s%s%s %3.0f%%  %s",
		TagSuccess, strings.Repeat("█", filled),
		TagMuted, strings.Repeat("░", gaugeWidth-filled),
		TagReset, f*100, escape(s.label))
}

func logText(s state) string {
	lines := make([]string, len(s.logs))
	for i, l := range s.logs {
		lines[i] = escape(l)
	}
	return strings.Join(lines, "\n")
}
