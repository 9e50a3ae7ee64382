package cli

import (
	"io"
	"strings"

	"deckdex/internal/model"
	"deckdex/internal/session"

	"github.com/spf13/cobra"
)

type draftResult struct {
	Cards int          `json:"cards"`
	Piles []model.Pile `json:"piles"`
}

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft sorting commands",
	}
	cmd.AddCommand(newDraftSortCmd(app))
	return cmd
}

func newDraftSortCmd(app *App) *cobra.Command {
	var file string
	var connected bool

	cmd := &cobra.Command{
		Use:   "sort [card...]",
		Short: "Sort a draft list into piles (simulated)",
		Long: strings.TrimSpace(`
Sorts a draft list the way the TUI does and prints the resulting piles.

The list comes from --file (use - for stdin) or from the arguments, one card
per argument. The robot starts disconnected; pass --connected to connect it
first, otherwise the sort is rejected like in the TUI.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHeadless(app, connected)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer h.Close()

			d := h.shell.Draft()
			switch {
			case file == "-":
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				d.SetText(string(b))
			case file != "":
				if err := d.LoadFile(file); err != nil {
					return writeErr(cmd, err)
				}
			default:
				d.SetText(strings.Join(args, "\n"))
			}

			if err := d.StartSorting(); err != nil {
				return h.fail(cmd, app, err)
			}
			if err := h.wait(cmd.Context(), func() bool { return !d.Processing() }); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, h.ok(draftResult{
				Cards: session.CountCards(d.Text()),
				Piles: d.Piles(),
			}))
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read the draft list from a .txt/.csv file (- for stdin)")
	cmd.Flags().BoolVar(&connected, "connected", false, "Connect the robot before sorting")
	return cmd
}
