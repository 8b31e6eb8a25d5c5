// Package ui is the full-screen progress view of a sync run, built on
// tview. It implements progress.Observer and io.Writer, so both the
// pipeline and the slog handler can feed it.
package ui

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/hlop3z/sdelite/internal/progress"
)

// redrawInterval bounds how often queued changes reach the screen.
const redrawInterval = 50 * time.Millisecond

// TUI renders progress in a terminal. Observer methods only touch an
// in-memory state and never wait on the event loop.
type TUI struct {
	app      *tview.Application
	phases   *tview.TextView
	status   *tview.TextView
	gauge    *tview.TextView
	logs     *tview.TextView
	footer   *tview.TextView
	cancel   context.CancelFunc
	fallback io.Writer

	mu         sync.Mutex
	st         state
	cancelled  bool
	dirty      chan struct{}
	ready      chan struct{}
	exited     chan struct{}
	readyOnce  sync.Once
	exitedOnce sync.Once
}

var (
	_ progress.Observer = (*TUI)(nil)
	_ io.Writer         = (*TUI)(nil)
)

// New builds the view. cancel is called on the first Ctrl-C; fallback
// receives Write calls once the view has exited.
func New(cancel context.CancelFunc, fallback io.Writer) *TUI {
	t := &TUI{
		app:      tview.NewApplication(),
		cancel:   cancel,
		fallback: fallback,
		dirty:    make(chan struct{}, 1),
		ready:    make(chan struct{}),
		exited:   make(chan struct{}),
	}

	t.phases = tview.NewTextView().SetDynamicColors(true)
	t.phases.SetBackgroundColor(Theme.Background)

	t.status = tview.NewTextView().SetDynamicColors(true)
	t.status.SetBorder(true).SetTitle(PanelStatus).SetBorderColor(Theme.Border)

	t.gauge = tview.NewTextView().SetDynamicColors(true)
	t.gauge.SetBorder(true).SetTitle(PanelProgress).SetBorderColor(Theme.Border)

	t.logs = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.logs.SetBorder(true).SetTitle(PanelLog).SetBorderColor(Theme.Border)

	t.footer = tview.NewTextView().SetText(" " + HintsRunning).SetTextColor(Theme.TextDim)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.phases, 1, 0, false).
		AddItem(t.status, 3, 0, false).
		AddItem(t.gauge, 3, 0, false).
		AddItem(t.logs, 0, 1, false).
		AddItem(t.footer, 1, 0, false)

	t.app.SetRoot(layout, true).
		SetInputCapture(t.handleKey).
		SetAfterDrawFunc(func(tcell.Screen) {
			t.readyOnce.Do(func() { close(t.ready) })
		})
	t.render()
	return t
}

// Run shows the view and blocks until Stop, a second Ctrl-C, or a screen error.
func (t *TUI) Run() error {
	done := make(chan struct{})
	go t.refresh(done)
	err := t.app.Run()
	close(done)
	t.exitedOnce.Do(func() { close(t.exited) })
	return err
}

// Stop closes the view. It waits for the first frame so a Stop issued
// right after starting Run is not lost.
func (t *TUI) Stop() {
	select {
	case <-t.ready:
		t.app.Stop()
	case <-t.exited:
	}
}

// refresh turns state changes into at most one queued redraw per interval.
func (t *TUI) refresh(done <-chan struct{}) {
	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			select {
			case <-t.dirty:
				t.app.QueueUpdateDraw(t.render)
			default:
			}
		}
	}
}

// render copies the state into the widgets. It runs on the event loop.
func (t *TUI) render() {
	t.mu.Lock()
	st := t.st
	st.logs = append([]string(nil), t.st.logs...)
	cancelled := t.cancelled
	t.mu.Unlock()

	t.phases.SetText(" " + phaseText(st))
	t.status.SetText(statusText(st))
	t.gauge.SetText(gaugeText(st))
	t.logs.SetText(logText(st)).ScrollToEnd()
	if cancelled {
		t.footer.SetText(" " + HintsCancelling).SetTextColor(Theme.Warning)
	}
}

func (t *TUI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyCtrlC {
		return event
	}

	t.mu.Lock()
	first := !t.cancelled
	t.cancelled = true
	t.mu.Unlock()

	if !first {
		t.app.Stop()
		return nil
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.Log("cancel requested, stopping after the current table")
	return nil
}

func (t *TUI) update(fn func(*state)) {
	t.mu.Lock()
	fn(&t.st)
	t.mu.Unlock()

	select {
	case t.dirty <- struct{}{}:
	default:
	}
}

// SetPhase implements progress.Observer.
func (t *TUI) SetPhase(p progress.Phase) {
	t.update(func(s *state) {
		s.phase = p
		s.started = true
	})
}

// SetStatus implements progress.Observer.
func (t *TUI) SetStatus(status string) {
	t.update(func(s *state) { s.status = status })
}

// SetProgress implements progress.Observer.
func (t *TUI) SetProgress(current, total uint64, label string) {
	t.update(func(s *state) {
		s.current, s.total, s.label = current, total, label
	})
}

// Log implements progress.Observer.
func (t *TUI) Log(msg string) {
	t.update(func(s *state) { s.appendLog(msg) })
}

// Write appends log output, one panel line per text line. After the view
// has exited it forwards to the fallback writer instead.
func (t *TUI) Write(p []byte) (int, error) {
	select {
	case <-t.exited:
		if t.fallback != nil {
			return t.fallback.Write(p)
		}
		return len(p), nil
	default:
	}

	text := strings.TrimRight(string(p), "\n")
	t.update(func(s *state) {
		for _, line := range strings.Split(text, "\n") {
			s.appendLog(line)
		}
	})
	return len(p), nil
}

// Cancelled reports whether the user asked to cancel.
func (t *TUI) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// escape keeps text from being read as color tags.
func escape(s string) string {
	return tview.Escape(s)
}
