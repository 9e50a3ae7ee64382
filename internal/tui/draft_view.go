package tui

import (
	"errors"
	"fmt"
	"strings"

	"deckdex/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

func (m appModel) updateDraftKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	d := m.shell.Draft()
	if d == nil {
		return m, nil
	}
	switch msg.String() {
	case "e", "i", "enter":
		return m, m.editor.Focus()
	case "E":
		cmd, err := m.openExternalEditor()
		if err != nil {
			m.status = "Editor failed: " + err.Error()
			return m, nil
		}
		return m, cmd
	case "o":
		m.modal = modalOpenFile
		m.pathInput.Reset()
		return m, m.pathInput.Focus()
	case "s":
		err := d.StartSorting()
		switch {
		case err == nil:
			return m, m.spinner.Tick
		case errors.Is(err, session.ErrBusy):
			m.status = "Already sorting."
		}
		return m, nil
	case "x":
		if d.Text() == "" && len(d.Piles()) == 0 && !d.Processing() {
			return m, nil
		}
		m.modal = modalConfirmReset
		m.confirmFocus = confirmFocusCancel
		return m, nil
	}
	return m, nil
}

func (m appModel) updateEditor(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if msg.String() == "esc" {
		m.editor.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if d := m.shell.Draft(); d != nil {
		d.SetText(m.editor.Value())
	}
	return m, cmd
}

func (m appModel) updateOpenFileModal(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.pathInput.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		m.modal = modalNone
		m.pathInput.Blur()
		return m.loadDraftFile(path)
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m appModel) loadDraftFile(path string) (appModel, tea.Cmd) {
	d := m.shell.Draft()
	if d == nil {
		return m, nil
	}
	if err := d.LoadFile(path); err != nil {
		m.notices.Notify(session.Notice{
			Title:       "Could Not Load Draft List",
			Description: err.Error(),
			Variant:     session.VariantDestructive,
		})
		return m, nil
	}
	m.editor.SetValue(d.Text())
	m.loadedText = m.editor.Value()

	m.closeWatch()
	w, err := watchDraftFile(path)
	if err != nil {
		m.log.Warn("draft file will not be watched", zap.String("path", path), zap.Error(err))
		return m, nil
	}
	m.watch = w
	return m, w.next()
}

// reloadDraftFile picks up a rewrite of the loaded file unless the list has
// been edited since it was loaded.
func (m appModel) reloadDraftFile(msg draftFileChangedMsg) (appModel, tea.Cmd) {
	d := m.shell.Draft()
	if msg.watch != m.watch || d == nil {
		return m, nil
	}
	if m.editor.Value() != m.loadedText {
		m.status = "Draft file changed on disk; keeping your edits."
		return m, m.watch.next()
	}
	if err := d.LoadFile(m.watch.path); err != nil {
		m.log.Warn("draft reload failed", zap.String("path", m.watch.path), zap.Error(err))
		return m, m.watch.next()
	}
	m.editor.SetValue(d.Text())
	m.loadedText = m.editor.Value()
	m.status = "Reloaded " + m.watch.path
	return m, m.watch.next()
}

func (m appModel) updateConfirmReset(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "esc", "n":
		m.modal = modalNone
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
		fallthrough
	case "enter":
		m.modal = modalNone
		if m.confirmFocus != confirmFocusConfirm {
			return m, nil
		}
		if d := m.shell.Draft(); d != nil {
			d.Reset()
		}
		m.editor.Reset()
		m.loadedText = ""
		m.closeWatch()
		return m, nil
	}
	return m, nil
}

func (m appModel) viewDraft(width, height int) string {
	d := m.shell.Draft()
	if d == nil {
		return ""
	}
	leftW := width * 3 / 5
	rightW := width - leftW

	count := session.CountCards(d.Text())
	editor := m.editor.View()
	if !m.editor.Focused() && d.Text() == "" {
		editor = styleMuted().Render("Press e to paste your draft list, or o to open a file.")
	}
	left := strings.Join([]string{
		styleHeading().Render("Draft List") + "  " + styleMuted().Render(fmt.Sprintf("%d cards", count)),
		"",
		editor,
	}, "\n")

	var piles []string
	switch {
	case d.Processing():
		piles = append(piles, m.spinner.View()+" Sorting "+fmt.Sprint(count)+" cards"+glyphEllipsis())
	case len(d.Piles()) == 0:
		piles = append(piles, styleMuted().Render("Piles appear here after sorting."))
	default:
		for _, p := range d.Piles() {
			piles = append(piles, fmt.Sprintf("Pile %d  %-10s %2d cards", p.Position, p.Label, p.DisplayCount))
		}
	}
	right := styleHeading().Render("Sorted Piles") + "\n\n" + strings.Join(piles, "\n")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		stylePanel(leftW-2).Render(normalizePane(left, leftW-4, height-2)),
		stylePanel(rightW-2).Render(normalizePane(right, rightW-4, height-2)),
	)
}
