package tui

import (
	"errors"
	"fmt"
	"strings"

	"deckdex/internal/model"
	"deckdex/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const suggestionsTitle = "Suggestions (static placeholder)"

func (m appModel) updateBuildKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	b := m.shell.Build()
	if b == nil {
		return m, nil
	}
	if msg.String() == "p" {
		if m.buildTab == buildTabDeck {
			m.buildTab = buildTabSuggestions
		} else {
			m.buildTab = buildTabDeck
		}
		return m, nil
	}
	if m.buildTab == buildTabSuggestions {
		if msg.String() == "esc" {
			m.buildTab = buildTabDeck
		}
		return m, nil
	}

	switch msg.String() {
	case "/":
		m.setPane(paneCatalog)
		return m, m.search.Focus()
	case "h", "left":
		m.setPane(paneCatalog)
		return m, nil
	case "l", "right":
		m.setPane(paneDeck)
		return m, nil
	case "b":
		switch err := b.BuildPhysical(); {
		case errors.Is(err, session.ErrNotConnected):
			m.status = "Connect the robot to build a physical deck."
		case errors.Is(err, session.ErrEmptyDeck):
			m.status = "Add cards to the deck first."
		case err == nil:
			m.status = fmt.Sprintf("Physical build requested for %d cards (not implemented, logged only).", b.Size())
		}
		return m, nil
	}

	if m.pane == paneDeck {
		return m.updateDeckPane(b, msg)
	}
	switch msg.String() {
	case "enter", "a":
		if it, ok := m.catalog.SelectedItem().(catalogItem); ok {
			b.Add(it.card)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(msg)
	return m, cmd
}

func (m appModel) updateDeckPane(b *session.Build, msg tea.KeyMsg) (appModel, tea.Cmd) {
	n := len(b.Entries())
	switch msg.String() {
	case "up", "k":
		m.deckCursor = max(m.deckCursor-1, 0)
	case "down", "j":
		m.deckCursor = min(m.deckCursor+1, max(n-1, 0))
	case "d", "x", "delete", "backspace":
		if m.deckCursor < n {
			b.Remove(b.Entries()[m.deckCursor].Card.ID)
			m.deckCursor = min(m.deckCursor, max(n-2, 0))
		}
	}
	return m, nil
}

func (m appModel) updateSearch(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		return m, nil
	case "esc":
		m.search.Reset()
		m.search.Blur()
		m.refreshCatalog()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshCatalog()
	return m, cmd
}

func (m *appModel) refreshCatalog() {
	b := m.shell.Build()
	if b == nil {
		return
	}
	m.catalog.SetItems(catalogItems(b.Search(m.search.Value())))
	m.catalog.ResetSelected()
}

func (m appModel) viewBuild(width, height int) string {
	b := m.shell.Build()
	if b == nil {
		return ""
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		styleTab(m.buildTab == buildTabDeck).Render("Deck"),
		" ",
		styleTab(m.buildTab == buildTabSuggestions).Render(suggestionsTitle),
	)
	bodyH := height - 1

	if m.buildTab == buildTabSuggestions {
		md := suggestionsMarkdown(b.DeckIdeas(), b.Recommendations())
		return tabs + "\n" + normalizePane(renderMarkdown(md, width-2), width, bodyH)
	}

	leftW := width * 3 / 5
	rightW := width - leftW

	matches := len(m.catalog.Items())
	left := strings.Join([]string{
		styleHeading().Render("Catalog") + "  " + styleMuted().Render(fmt.Sprintf("%d matches", matches)),
		m.search.View(),
		m.catalog.View(),
	}, "\n")
	if matches == 0 {
		left += "\n" + styleMuted().Render("No cards match.")
	}

	deck := []string{styleHeading().Render(fmt.Sprintf("Deck %d/%d", b.Size(), b.Target())), ""}
	entries := b.Entries()
	if len(entries) == 0 {
		deck = append(deck, styleMuted().Render("No cards yet. Add some from the catalog."))
	}
	for i, e := range entries {
		line := fmt.Sprintf("%dx %s  %s", e.Quantity, e.Card.Name, styleMuted().Render(e.Card.Type))
		if m.pane == paneDeck && i == m.deckCursor {
			line = styleSelected().Render(glyphPointer()+" ") + line
		} else {
			line = "  " + line
		}
		deck = append(deck, line)
	}
	button := "b: Build Physical Deck"
	if b.CanBuildPhysical() {
		button = styleTab(true).Render(button)
	} else {
		button = styleMuted().Render(button)
	}
	deck = append(deck, "", button)

	return tabs + "\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		stylePanel(leftW-2).Render(normalizePane(left, leftW-4, bodyH-2)),
		stylePanel(rightW-2).Render(normalizePane(strings.Join(deck, "\n"), rightW-4, bodyH-2)),
	)
}

func suggestionsMarkdown(ideas []model.DeckIdea, recs []model.CardRecommendation) string {
	var sb strings.Builder
	sb.WriteString("# " + suggestionsTitle + "\n\n")
	sb.WriteString("These suggestions do not look at your deck.\n\n")
	sb.WriteString("## Deck Ideas\n\n")
	for _, d := range ideas {
		fmt.Fprintf(&sb, "- **%s** (%d%% match, %s): %s. %s\n",
			d.Name, d.MatchPercent, strings.Join(d.Colors, "/"), d.Theme, d.Description)
	}
	sb.WriteString("\n## Recommended Cards\n\n")
	for _, r := range recs {
		fmt.Fprintf(&sb, "- **%s** (%s synergy): %s\n", r.Name, r.Synergy, r.Reason)
	}
	return sb.String()
}
