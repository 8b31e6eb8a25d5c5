package progress

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{Checking, "Checking"},
		{Downloading, "Downloading"},
		{Extracting, "Extracting"},
		{Converting, "Converting"},
		{Complete, "Complete"},
		{Phase(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		name           string
		current, total uint64
		want           float64
	}{
		{"quarter", 25, 100, 0.25},
		{"clamped", 120, 100, 1},
		{"unknown total", 5, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fraction(tt.current, tt.total); got != tt.want {
				t.Errorf("Fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMultiAndRecorder(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	obs := Multi(a, nil, b)

	obs.SetPhase(Converting)
	obs.SetStatus("importing types")
	obs.SetProgress(10, 20, "types: 10 rows")
	Logf(obs, "%s: %d rows", "types", 20)

	for _, r := range []*Recorder{a, b} {
		if !reflect.DeepEqual(r.Phases(), []Phase{Converting}) {
			t.Errorf("Phases() = %v", r.Phases())
		}
		if !reflect.DeepEqual(r.Statuses(), []string{"importing types"}) {
			t.Errorf("Statuses() = %v", r.Statuses())
		}
		if !reflect.DeepEqual(r.Updates(), []Update{{10, 20, "types: 10 rows"}}) {
			t.Errorf("Updates() = %v", r.Updates())
		}
		if !reflect.DeepEqual(r.Lines(), []string{"types: 20 rows"}) {
			t.Errorf("Lines() = %v", r.Lines())
		}
	}
}

func TestOrSilent(t *testing.T) {
	if OrSilent(nil) != Silent {
		t.Error("OrSilent(nil) should return Silent")
	}
	r := &Recorder{}
	if OrSilent(r) != Observer(r) {
		t.Error("OrSilent should keep a non-nil observer")
	}
	Silent.SetPhase(Complete)
	Silent.SetProgress(1, 1, "")
}

func TestSlogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	obs := NewSlog(logger)

	obs.SetPhase(Converting)
	obs.SetProgress(1, 2, "types")
	obs.Log("types: 20 rows")

	out := buf.String()
	if !strings.Contains(out, "phase=Converting") {
		t.Errorf("missing phase line in:\n%s", out)
	}
	if strings.Contains(out, "msg=progress") {
		t.Errorf("progress should be debug level:\n%s", out)
	}
	if !strings.Contains(out, `msg="types: 20 rows"`) {
		t.Errorf("missing log line in:\n%s", out)
	}
}
