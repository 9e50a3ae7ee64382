package cli

import (
	"deckdex/internal/catalog"
	"deckdex/internal/model"

	"github.com/spf13/cobra"
)

type deckResult struct {
	Entries          []model.DeckEntry `json:"entries"`
	Size             int               `json:"size"`
	Target           int               `json:"target"`
	CanBuildPhysical bool              `json:"canBuildPhysical"`
	BuildRequested   bool              `json:"buildRequested,omitempty"`
}

type suggestionsResult struct {
	Title           string                     `json:"title"`
	DeckIdeas       []model.DeckIdea           `json:"deckIdeas"`
	Recommendations []model.CardRecommendation `json:"recommendations"`
}

func newBuildCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Deck building commands",
	}
	cmd.AddCommand(newBuildSearchCmd(app))
	cmd.AddCommand(newBuildDeckCmd(app))
	cmd.AddCommand(newBuildSuggestionsCmd(app))
	return cmd
}

func newBuildSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]",
		Short: "Search the catalog by name or type (empty term lists everything)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return writeOut(cmd, app, envelope{Data: catalog.Search(term)})
		},
	}
}

func newBuildDeckCmd(app *App) *cobra.Command {
	var connected bool
	var physical bool

	cmd := &cobra.Command{
		Use:   "deck <card-id>...",
		Short: "Add catalog cards to a deck in order and print it (max 4 copies each)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHeadless(app, connected)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer h.Close()
			if err := h.shell.SelectMode(model.ModeBuild); err != nil {
				return writeErr(cmd, err)
			}
			b := h.shell.Build()

			for _, id := range args {
				card, ok := catalog.Lookup(id)
				if !ok {
					return writeErr(cmd, errNotFound("card", id))
				}
				b.Add(card)
			}

			res := deckResult{
				Entries:          b.Entries(),
				Size:             b.Size(),
				Target:           b.Target(),
				CanBuildPhysical: b.CanBuildPhysical(),
			}
			if physical {
				if err := b.BuildPhysical(); err != nil {
					return h.fail(cmd, app, err)
				}
				res.BuildRequested = true
			}
			return writeOut(cmd, app, h.ok(res))
		},
	}

	cmd.Flags().BoolVar(&connected, "connected", false, "Connect the robot first")
	cmd.Flags().BoolVar(&physical, "physical", false, "Request a physical build (logged only)")
	return cmd
}

func newBuildSuggestionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "Print the static deck ideas and card recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, envelope{Data: suggestionsResult{
				Title:           "Suggestions (static placeholder)",
				DeckIdeas:       catalog.DeckIdeas(),
				Recommendations: catalog.Recommendations(),
			}})
		},
	}
}
