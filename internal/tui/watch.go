package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// draftWatch follows a loaded draft file. The parent directory is watched
// because editors often save by renaming a temp file over the original.
type draftWatch struct {
	w    *fsnotify.Watcher
	path string
}

type draftFileChangedMsg struct{ watch *draftWatch }

type draftWatchErrMsg struct {
	watch *draftWatch
	err   error
}

func watchDraftFile(path string) (*draftWatch, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}
	return &draftWatch{w: w, path: abs}, nil
}

// next waits for the next write to the file. The command returns nil once
// the watcher is closed.
func (d *draftWatch) next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-d.w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != d.path {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					return draftFileChangedMsg{watch: d}
				}
			case err, ok := <-d.w.Errors:
				if !ok {
					return nil
				}
				return draftWatchErrMsg{watch: d, err: err}
			}
		}
	}
}

func (d *draftWatch) Close() error {
	return d.w.Close()
}
