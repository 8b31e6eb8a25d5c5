package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func init() {
	// Plain mode in tests so style functions return raw text.
	SetDefault(&Config{Mode: ModePlain})
}

func TestDetect_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg := Detect(f)
	if cfg.IsTTY() {
		t.Error("a regular file should never be styled")
	}
	if cfg.Writer != f {
		t.Error("Detect should write to the given file")
	}
}

func TestIsTerminal_Nil(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("IsTerminal(nil) = true")
	}
}

func TestDetect_EnvDisablesStyling(t *testing.T) {
	// Neither variable can turn styling on, so these hold on any runner.
	tests := []struct {
		name, key, value string
	}{
		{"NO_COLOR", "NO_COLOR", "1"},
		{"TERM=dumb", "TERM", "dumb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if Detect(os.Stderr).IsTTY() {
				t.Errorf("%s=%s should force plain output", tt.key, tt.value)
			}
		})
	}
}

func TestSetDefault(t *testing.T) {
	original := current
	defer func() { current = original }()

	custom := &Config{Mode: ModeTTY}
	SetDefault(custom)
	if got := Default(); got != custom {
		t.Error("SetDefault did not replace the config")
	}
	if !EnableColors() {
		t.Error("EnableColors() should be true in TTY mode")
	}

	SetDefault(&Config{Mode: ModePlain})
	if EnableColors() {
		t.Error("EnableColors() should be false in plain mode")
	}
}

func TestDefault_DetectsLazily(t *testing.T) {
	original := current
	defer func() { current = original }()

	current = nil
	cfg := Default()
	if cfg == nil || cfg.Writer == nil {
		t.Fatal("Default() should detect a config for stderr")
	}
	if Default() != cfg {
		t.Error("Default() should cache the detected config")
	}
}
