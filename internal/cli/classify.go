package cli

import (
	"strings"

	"deckdex/internal/export"
	"deckdex/internal/model"

	"github.com/spf13/cobra"
)

type statsResult struct {
	model.LibraryStats
	Total int `json:"total"`
}

type scanResult struct {
	Scanned    []model.ScannedCard `json:"scanned"`
	Stats      statsResult         `json:"stats"`
	ExportPath string              `json:"exportPath,omitempty"`
}

func newClassifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Scan and classify commands",
	}
	cmd.AddCommand(newClassifyScanCmd(app))
	cmd.AddCommand(newClassifyStatsCmd(app))
	return cmd
}

func newClassifyScanCmd(app *App) *cobra.Command {
	var connected bool
	var exportDir string
	var exportFormat string
	var csvOut bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a simulated scan and print the classified batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(exportFormat)
			if err != nil {
				return writeErr(cmd, err)
			}
			h, err := newHeadless(app, connected)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer h.Close()

			c := h.shell.Classify()
			if c == nil {
				// The shell mounts draft first; scanning needs the classify tab.
				if err := h.shell.SelectMode(model.ModeClassify); err != nil {
					return writeErr(cmd, err)
				}
				c = h.shell.Classify()
			}
			if err := c.StartScanning(); err != nil {
				return h.fail(cmd, app, err)
			}
			if err := h.wait(cmd.Context(), func() bool { return !c.Scanning() }); err != nil {
				return writeErr(cmd, err)
			}

			if csvOut {
				if err := c.ExportCSV(cmd.OutOrStdout()); err != nil {
					return writeErr(cmd, err)
				}
				_, err := cmd.OutOrStdout().Write([]byte("\n"))
				return err
			}

			res := scanResult{
				Scanned: c.Scanned(),
				Stats:   statsResult{LibraryStats: c.Stats(), Total: c.Stats().Total()},
			}
			if strings.TrimSpace(exportDir) != "" {
				path, err := c.ExportFile(exportDir, f)
				if err != nil {
					return writeErr(cmd, err)
				}
				res.ExportPath = path
			}
			return writeOut(cmd, app, h.ok(res))
		},
	}

	cmd.Flags().BoolVar(&connected, "connected", false, "Connect the robot before scanning")
	cmd.Flags().StringVar(&exportDir, "export", "", "Write mtg_library.<ext> into this directory")
	cmd.Flags().StringVar(&exportFormat, "export-format", "csv", "Export format (csv|xlsx)")
	cmd.Flags().BoolVar(&csvOut, "csv", false, "Print the CSV export to stdout instead of JSON/EDN")
	return cmd
}

func newClassifyStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the library statistics before any scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHeadless(app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer h.Close()
			if err := h.shell.SelectMode(model.ModeClassify); err != nil {
				return writeErr(cmd, err)
			}
			st := h.shell.Classify().Stats()
			return writeOut(cmd, app, h.ok(statsResult{LibraryStats: st, Total: st.Total()}))
		},
	}
}
