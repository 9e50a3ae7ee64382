package cli

import (
	"deckdex/internal/model"

	"github.com/spf13/cobra"
)

type modeInfo struct {
	ID    model.Mode `json:"id"`
	Title string     `json:"title"`
	Key   string     `json:"key"`
}

func newModesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the session modes (TUI tabs)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []modeInfo
			for i, m := range model.Modes() {
				out = append(out, modeInfo{ID: m, Title: m.Title(), Key: string(rune('1' + i))})
			}
			return writeOut(cmd, app, envelope{Data: out})
		},
	}
}
