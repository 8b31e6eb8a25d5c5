// Package progress defines the observer contract between the conversion
// pipeline and whatever renders its status: a console, a TUI, or a log.
//
// Observers are called synchronously from the pipeline goroutine. They must
// return quickly; a slow observer stalls the import.
package progress

import (
	"fmt"
	"log/slog"
	"sync"
)

// Phase is a coarse stage of a sync run.
type Phase int

const (
	Checking Phase = iota
	Downloading
	Extracting
	Converting
	Complete
)

func (p Phase) String() string {
	switch p {
	case Checking:
		return "Checking"
	case Downloading:
		return "Downloading"
	case Extracting:
		return "Extracting"
	case Converting:
		return "Converting"
	case Complete:
		return "Complete"
	}
	return "Unknown"
}

// Observer receives progress from the pipeline. None of its methods may
// affect the outcome of a run.
type Observer interface {
	// SetPhase announces a new stage.
	SetPhase(Phase)
	// SetStatus replaces the one-line status.
	SetStatus(string)
	// SetProgress reports current out of total for the bar labelled label.
	// A zero total means the total is unknown.
	SetProgress(current, total uint64, label string)
	// Log appends a line to the run log.
	Log(string)
}

// Fraction returns current/total clamped to [0, 1], or -1 when total is 0.
func Fraction(current, total uint64) float64 {
	if total == 0 {
		return -1
	}
	return min(float64(current)/float64(total), 1)
}

// Logf formats a line and appends it to o's log.
func Logf(o Observer, format string, args ...any) {
	o.Log(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------
// Silent
// -----------------------------------------------------------------------------

type silent struct{}

func (silent) SetPhase(Phase)                     {}
func (silent) SetStatus(string)                   {}
func (silent) SetProgress(uint64, uint64, string) {}
func (silent) Log(string)                         {}

// Silent discards everything.
var Silent Observer = silent{}

// OrSilent returns o, or Silent when o is nil.
func OrSilent(o Observer) Observer {
	if o == nil {
		return Silent
	}
	return o
}

// -----------------------------------------------------------------------------
// Multi
// -----------------------------------------------------------------------------

type multi []Observer

// Multi fans every call out to several observers, in order. Nil observers are skipped.
func Multi(observers ...Observer) Observer {
	var m multi
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multi) SetPhase(p Phase) {
	for _, o := range m {
		o.SetPhase(p)
	}
}

func (m multi) SetStatus(s string) {
	for _, o := range m {
		o.SetStatus(s)
	}
}

func (m multi) SetProgress(current, total uint64, label string) {
	for _, o := range m {
		o.SetProgress(current, total, label)
	}
}

func (m multi) Log(line string) {
	for _, o := range m {
		o.Log(line)
	}
}

// -----------------------------------------------------------------------------
// Slog
// -----------------------------------------------------------------------------

// Slog writes phases, statuses and log lines at info level and bar updates
// at debug level.
type Slog struct {
	Logger *slog.Logger
}

// NewSlog returns an observer that writes to logger, or slog.Default() when nil.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{Logger: logger}
}

func (s *Slog) SetPhase(p Phase) {
	s.Logger.Info("phase", "phase", p.String())
}

func (s *Slog) SetStatus(status string) {
	s.Logger.Info(status)
}

func (s *Slog) SetProgress(current, total uint64, label string) {
	s.Logger.Debug("progress", "label", label, "current", current, "total", total)
}

func (s *Slog) Log(line string) {
	s.Logger.Info(line)
}

// -----------------------------------------------------------------------------
// Recorder
// -----------------------------------------------------------------------------

// Update is one SetProgress call.
type Update struct {
	Current, Total uint64
	Label          string
}

// Recorder keeps every call it receives. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	phases   []Phase
	statuses []string
	updates  []Update
	lines    []string
}

func (r *Recorder) SetPhase(p Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, p)
}

func (r *Recorder) SetStatus(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
}

func (r *Recorder) SetProgress(current, total uint64, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, Update{Current: current, Total: total, Label: label})
}

func (r *Recorder) Log(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Phases returns the phases seen, in order.
func (r *Recorder) Phases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Phase(nil), r.phases...)
}

// Statuses returns the statuses seen, in order.
func (r *Recorder) Statuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statuses...)
}

// Updates returns the progress updates seen, in order.
func (r *Recorder) Updates() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

// Lines returns the log lines seen, in order.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}
