package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/hlop3z/sdelite/internal/cli"
	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/ui"
	"github.com/hlop3z/sdelite/pkg/sdelite"
)

// session owns the progress display and logger of one long-running command.
type session struct {
	ctx      context.Context
	observer progress.Observer
	logger   *slog.Logger

	cancel context.CancelFunc
	tui    *ui.TUI
	tuiErr chan error
}

// display picks where progress goes: nowhere when quiet, the full-screen
// view on an interactive terminal, otherwise the console.
type display int

const (
	displayNone display = iota
	displayConsole
	displayTUI
)

func (a *app) display(cfg *Config, allowTUI bool) display {
	switch {
	case cfg.Quiet:
		return displayNone
	case allowTUI && !cfg.NoTUI && a.interactive:
		return displayTUI
	}
	return displayConsole
}

// newLogger builds the text handler the CLI logs through.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case cfg.Verbose:
		level = slog.LevelDebug
	case cfg.Quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// startSession wires observer and logger. The TUI runs its own event loop
// until close is called.
func (a *app) startSession(ctx context.Context, cfg *Config, allowTUI bool) *session {
	ctx, cancel := context.WithCancel(ctx)
	s := &session{ctx: ctx, cancel: cancel}

	switch a.display(cfg, allowTUI) {
	case displayNone:
		s.observer = progress.Silent
		s.logger = newLogger(cfg, a.stderr)
	case displayConsole:
		console := cli.NewConsole(a.stderr, cli.Default().IsTTY())
		s.observer = console
		s.logger = newLogger(cfg, console)
	case displayTUI:
		s.tui = ui.New(cancel, a.stderr)
		s.observer = s.tui
		s.logger = newLogger(cfg, s.tui)
		s.tuiErr = make(chan error, 1)
		go func() { s.tuiErr <- s.tui.Run() }()
	}

	slog.SetDefault(s.logger)
	return s
}

// client builds the public API client on top of the session.
func (s *session) client(cfg *Config, extra ...sdelite.Option) (*sdelite.Client, error) {
	opts := append(cfg.clientOptions(),
		sdelite.WithObserver(s.observer),
		sdelite.WithLogger(s.logger),
	)
	return sdelite.New(append(opts, extra...)...)
}

// close tears down the display. Errors of the view itself are logged, not
// returned: the command's own result matters more.
func (s *session) close() {
	if s.tui != nil {
		s.tui.Stop()
		if err := <-s.tuiErr; err != nil {
			s.logger.Warn("progress view failed", "error", err)
		}
	}
	s.cancel()
}
