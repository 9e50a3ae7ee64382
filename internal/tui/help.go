package tui

import (
	"deckdex/internal/docs"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) openHelp() (appModel, tea.Cmd) {
	body, ok := docs.Get("keys")
	if !ok {
		return m, nil
	}
	m.showHelp = true
	m.help.Width = max(m.width-2, 20)
	m.help.Height = m.bodyHeight()
	m.help.SetContent(renderMarkdown(body, m.help.Width-2))
	m.help.GotoTop()
	return m, nil
}

func (m appModel) updateHelp(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.showHelp = false
		return m, nil
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return m, cmd
}
