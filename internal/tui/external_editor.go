package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"deckdex/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type externalEditorDoneMsg struct {
	path string
	err  error
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openExternalEditor writes the draft list to a temp file and suspends the
// TUI while $VISUAL (or $EDITOR) edits it.
func (m *appModel) openExternalEditor() (tea.Cmd, error) {
	args := splitShellWords(externalEditorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "deckdex-draft-*.txt")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(m.editor.Value()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{path: path, err: err}
	}), nil
}

func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) {
	if strings.TrimSpace(msg.path) == "" {
		return
	}
	defer func() { _ = os.Remove(msg.path) }()

	if msg.err != nil {
		m.status = "Editor failed: " + msg.err.Error()
		return
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		m.status = "Editor read failed: " + err.Error()
		return
	}
	d := m.shell.Draft()
	if d == nil {
		// Mode changed while the editor was open.
		return
	}

	before := m.editor.Value()
	after := string(b)
	if strings.TrimSpace(after) == strings.TrimSpace(before) {
		m.status = fmt.Sprintf("No changes from %s", externalEditorName())
		return
	}
	m.editor.SetValue(after)
	d.SetText(m.editor.Value())
	cards := session.CountCards(d.Text())
	m.log.Debug("draft list edited externally", zap.Int("cards", cards))
	m.status = fmt.Sprintf("Updated from %s (%d cards)", externalEditorName(), cards)
}
