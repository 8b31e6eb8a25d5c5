package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/hlop3z/sdelite/internal/progress"
)

// ===========================================================================
// Rendering
// ===========================================================================

func TestPhaseText(t *testing.T) {
	tests := []struct {
		name  string
		st    state
		want  []string
		avoid []string
	}{
		{
			name: "not started",
			st:   state{},
			want: []string{"○ Checking", "○ Complete"},
		},
		{
			name:  "extracting",
			st:    state{started: true, phase: progress.Extracting},
			want:  []string{"✓ Checking", "✓ Downloading", "● Extracting", "○ Converting", "○ Complete"},
			avoid: []string{"● Converting"},
		},
		{
			name: "complete",
			st:   state{started: true, phase: progress.Complete},
			want: []string{"✓ Converting", "✓ Complete"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := phaseText(tt.st)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("phaseText() = %q, missing %q", got, w)
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(got, a) {
					t.Errorf("phaseText() = %q, should not contain %q", got, a)
				}
			}
		})
	}
}

func TestGaugeText(t *testing.T) {
	half := gaugeText(state{current: 50, total: 100, label: "types: 50 rows"})
	if strings.Count(half, "█") != gaugeWidth/2 {
		t.Errorf("half gauge = %q", half)
	}
	if !strings.Contains(half, " 50%") || !strings.Contains(half, "types: 50 rows") {
		t.Errorf("half gauge missing percent or label: %q", half)
	}

	unknown := gaugeText(state{current: 10, label: "10 B"})
	if unknown != "10 B" {
		t.Errorf("unknown total gauge = %q, want label only", unknown)
	}
}

func TestStatusText(t *testing.T) {
	if got := statusText(state{}); !strings.Contains(got, "waiting") {
		t.Errorf("empty status = %q", got)
	}
	if got := statusText(state{status: "Importing types (1/2)"}); !strings.Contains(got, "Importing types (1/2)") {
		t.Errorf("status = %q", got)
	}
}

func TestLogText_EscapesTags(t *testing.T) {
	got := logText(state{logs: []string{"[red]not a tag", "plain"}})
	if strings.HasPrefix(got, "[red]") {
		t.Errorf("log line not escaped: %q", got)
	}
	if !strings.HasSuffix(got, "\nplain") {
		t.Errorf("lines not joined: %q", got)
	}
}

func TestState_LogCap(t *testing.T) {
	var s state
	for i := 0; i < maxLogLines+10; i++ {
		s.appendLog("line")
	}
	if len(s.logs) != maxLogLines {
		t.Errorf("len(logs) = %d, want %d", len(s.logs), maxLogLines)
	}
}

// ===========================================================================
// Observer
// ===========================================================================

func TestTUI_Observer(t *testing.T) {
	tui := New(nil, nil)

	tui.SetPhase(progress.Converting)
	tui.SetStatus("Importing types (1/1)")
	tui.SetProgress(3, 4, "types: 3 rows")
	tui.Log("types: 4 rows")

	tui.mu.Lock()
	st := tui.st
	tui.mu.Unlock()

	if !st.started || st.phase != progress.Converting {
		t.Errorf("phase = %v (started %v)", st.phase, st.started)
	}
	if st.status != "Importing types (1/1)" {
		t.Errorf("status = %q", st.status)
	}
	if st.current != 3 || st.total != 4 || st.label != "types: 3 rows" {
		t.Errorf("progress = %d/%d %q", st.current, st.total, st.label)
	}
	if len(st.logs) != 1 || st.logs[0] != "types: 4 rows" {
		t.Errorf("logs = %v", st.logs)
	}
	select {
	case <-tui.dirty:
	default:
		t.Error("updates should mark the view dirty")
	}
}

func TestTUI_WriteSplitsLines(t *testing.T) {
	tui := New(nil, nil)

	n, err := tui.Write([]byte("level=INFO msg=a\nlevel=INFO msg=b\n"))
	if err != nil || n != len("level=INFO msg=a\nlevel=INFO msg=b\n") {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if got := tui.st.logs; len(got) != 2 || got[1] != "level=INFO msg=b" {
		t.Errorf("logs = %v", got)
	}
}

func TestTUI_WriteAfterExitUsesFallback(t *testing.T) {
	var buf bytes.Buffer
	tui := New(nil, &buf)
	tui.exitedOnce.Do(func() { close(tui.exited) })

	if _, err := tui.Write([]byte("late\n")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "late\n" {
		t.Errorf("fallback = %q", buf.String())
	}
	if len(tui.st.logs) != 0 {
		t.Errorf("logs = %v, want none", tui.st.logs)
	}
}

func TestTUI_CtrlCCancelsOnce(t *testing.T) {
	calls := 0
	tui := New(func() { calls++ }, nil)

	if ev := tui.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); ev == nil {
		t.Error("other keys must pass through")
	}

	ctrlC := tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if ev := tui.handleKey(ctrlC); ev != nil {
		t.Error("Ctrl-C should be consumed")
	}
	tui.handleKey(ctrlC)

	if calls != 1 {
		t.Errorf("cancel called %d times, want 1", calls)
	}
	if !tui.Cancelled() {
		t.Error("Cancelled() = false")
	}
	if len(tui.st.logs) != 1 || !strings.Contains(tui.st.logs[0], "cancel requested") {
		t.Errorf("logs = %v", tui.st.logs)
	}
}

func TestTUI_RenderDoesNotPanic(t *testing.T) {
	tui := New(nil, nil)
	tui.SetPhase(progress.Downloading)
	tui.SetProgress(1, 2, "[x] 1 B / 2 B")
	tui.render()

	if got := tui.gauge.GetText(false); !strings.Contains(got, "1 B / 2 B") {
		t.Errorf("gauge text = %q", got)
	}
}
