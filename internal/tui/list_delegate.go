package tui

import (
	"fmt"
	"io"
	"strings"

	"deckdex/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type catalogItem struct {
	card model.CatalogCard
}

func (i catalogItem) FilterValue() string { return i.card.Name }

func (i catalogItem) Title() string {
	c := i.card
	parts := []string{c.Name, c.Type, c.Cost}
	if c.HasStats() {
		parts = append(parts, c.Power+"/"+c.Toughness)
	}
	parts = append(parts, c.Rarity, fmt.Sprintf("owned %d", c.Owned))
	return strings.Join(parts, "  ")
}

func catalogItems(cards []model.CatalogCard) []list.Item {
	items := make([]list.Item, 0, len(cards))
	for _, c := range cards {
		items = append(items, catalogItem{card: c})
	}
	return items
}

// compactItemDelegate renders one line per item, padded or cut to the list
// width.
type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	// focused is false when another pane has the keyboard; the cursor row is
	// then only marked, not highlighted.
	focused bool
}

func newCompactItemDelegate(focused bool) compactItemDelegate {
	return compactItemDelegate{
		normal:   lipgloss.NewStyle(),
		selected: styleSelected(),
		focused:  focused,
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	prefix := "  "
	style := d.normal
	if index == m.Index() {
		prefix = glyphPointer() + " "
		if d.focused {
			style = d.selected
		}
	}
	fmt.Fprint(w, style.Render(fitWidth(prefix+txt, contentW)))
}

func newCatalogList(items []list.Item, focused bool) list.Model {
	l := list.New(items, newCompactItemDelegate(focused), 0, 0)
	l.Title = "Catalog"
	// Search runs through the build workflow, and the app draws its own chrome.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.SetStatusBarItemName("card", "cards")
	return l
}
