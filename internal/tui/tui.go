// Package tui is the interactive DeckDex front end.
package tui

import (
	"deckdex/internal/config"
	"deckdex/internal/sched"
	"deckdex/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Config *config.Config
	Log    *zap.Logger
	// ExportDir receives library exports; defaults to the working directory.
	ExportDir string
	// DraftFile is loaded into the draft list on start.
	DraftFile string
}

func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	timing, err := cfg.ParseTiming()
	if err != nil {
		return err
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(cfg.UI.Glyphs)

	// Timers fire on their own goroutines; the queue hands their callbacks
	// to Update so the session is only touched from one goroutine.
	q := sched.NewQueue()
	defer q.Close()

	m := newAppModel(appDeps{
		sched:     sched.NewTimer(q.Dispatch),
		tasks:     q,
		timing:    timing,
		log:       log,
		rand:      session.NewRand(cfg.UI.Seed),
		exportDir: opts.ExportDir,
		draftFile: opts.DraftFile,
	})
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(appModel); ok {
		fm.close()
	} else {
		m.close()
	}
	return err
}
