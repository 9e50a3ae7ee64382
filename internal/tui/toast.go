package tui

import (
	"slices"
	"time"

	"deckdex/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const maxVisibleToasts = 3

type toast struct {
	id     string
	notice session.Notice
}

type toastExpiredMsg struct{ id string }

// flushNotices turns pending notices into toasts, each with its own expiry
// tick.
func (m *appModel) flushNotices() tea.Cmd {
	ns := m.notices.Drain()
	if len(ns) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(ns))
	for _, n := range ns {
		id := uuid.NewString()
		m.toasts = append(m.toasts, toast{id: id, notice: n})
		cmds = append(cmds, tea.Tick(m.timing.NoticeTTL, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *appModel) expireToast(id string) {
	m.toasts = slices.DeleteFunc(m.toasts, func(t toast) bool { return t.id == id })
}

func (m appModel) viewToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	w := min(max(m.width-2, 20), 52)
	visible := m.toasts[max(0, len(m.toasts)-maxVisibleToasts):]
	boxes := make([]string, 0, len(visible))
	for _, t := range visible {
		var border lipgloss.TerminalColor = colorAccent
		title := lipgloss.NewStyle().Bold(true)
		if t.notice.Destructive() {
			border = colorDestructive
			title = title.Foreground(colorDestructive)
		}
		boxes = append(boxes, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(w).
			Render(title.Render(t.notice.Title)+"\n"+t.notice.Description))
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Left, boxes...))
}
