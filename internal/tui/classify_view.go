package tui

import (
	"errors"
	"fmt"
	"strings"

	"deckdex/internal/export"
	"deckdex/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m appModel) updateClassifyKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	c := m.shell.Classify()
	if c == nil {
		return m, nil
	}
	switch msg.String() {
	case "s":
		if err := c.StartScanning(); errors.Is(err, session.ErrBusy) {
			m.status = "Already scanning."
		}
	case "e":
		m.exportLibrary(c, export.FormatCSV)
	case "E":
		m.exportLibrary(c, export.FormatXLSX)
	case "y":
		m.copyLibrary(c)
	}
	return m, nil
}

func (m *appModel) copyLibrary(c *session.Classify) {
	if !c.CanExport() {
		m.status = "Nothing to copy yet. Scan some cards first."
		return
	}
	var sb strings.Builder
	if err := c.ExportCSV(&sb); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	if err := copyToClipboard(sb.String()); err != nil {
		m.notices.Notify(session.Notice{
			Title:       "Copy Failed",
			Description: err.Error(),
			Variant:     session.VariantDestructive,
		})
		return
	}
	m.status = fmt.Sprintf("Copied %d scanned cards as CSV.", len(c.Scanned()))
}

func (m *appModel) exportLibrary(c *session.Classify, f export.Format) {
	path, err := c.ExportFile(m.exportDir, f)
	switch {
	case errors.Is(err, session.ErrNothingToExport):
		m.status = "Nothing to export yet. Scan some cards first."
	case err != nil:
		m.notices.Notify(session.Notice{
			Title:       "Export Failed",
			Description: err.Error(),
			Variant:     session.VariantDestructive,
		})
	default:
		m.notices.Notify(session.Notice{
			Title:       "Library Exported",
			Description: "Saved " + path,
			Variant:     session.VariantDefault,
		})
	}
}

func (m appModel) viewClassify(width, height int) string {
	c := m.shell.Classify()
	if c == nil {
		return ""
	}

	var state string
	switch c.Phase() {
	case session.PhaseIdle:
		state = "Ready. Press s to start scanning."
	case session.PhaseScanning:
		state = fmt.Sprintf("Scanning%s %d%%", glyphEllipsis(), c.Progress())
	case session.PhaseDone:
		state = fmt.Sprintf("Scan complete. %d%%", c.Progress())
	}
	scanner := strings.Join([]string{
		styleHeading().Render("Scanner"),
		state,
		m.progress.ViewAs(float64(c.Progress()) / 100),
	}, "\n")

	st := c.Stats()
	stats := strings.Join([]string{
		styleHeading().Render("Library"),
		fmt.Sprintf("%-10s %4d", "Creatures", st.Creatures),
		fmt.Sprintf("%-10s %4d", "Spells", st.Spells),
		fmt.Sprintf("%-10s %4d", "Lands", st.Lands),
		fmt.Sprintf("%-10s %4d", "Artifacts", st.Artifacts),
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-10s %4d", "Total", st.Total())),
	}, "\n")

	rows := []string{styleHeading().Render("Recently Scanned")}
	scanned := c.Scanned()
	if len(scanned) == 0 {
		rows = append(rows, styleMuted().Render("No cards scanned yet."))
	} else {
		rows = append(rows, styleMuted().Render(fmt.Sprintf("%-16s %-18s %-5s %-9s %s", "Name", "Type", "Cost", "Rarity", "Set")))
		for _, sc := range scanned {
			rows = append(rows, fmt.Sprintf("%-16s %-18s %-5s %-9s %s", sc.Name, sc.Type, sc.Cost, sc.Rarity, sc.Set))
		}
	}
	exportHint := "e: export CSV   E: export XLSX   y: copy CSV"
	if !c.CanExport() {
		exportHint = styleMuted().Render(exportHint + " (nothing scanned)")
	}
	rows = append(rows, "", exportHint)

	statsW := 24
	tableW := max(width-statsW, 20)
	lower := lipgloss.JoinHorizontal(lipgloss.Top,
		stylePanel(tableW-2).Render(strings.Join(rows, "\n")),
		stylePanel(statsW-2).Render(stats),
	)
	body := stylePanel(width-2).Render(scanner) + "\n" + lower
	return normalizePane(body, width, height)
}
