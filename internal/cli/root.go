package cli

import (
	"fmt"
	"os"
	"strings"

	"deckdex/internal/config"
	"deckdex/internal/format"
	"deckdex/internal/logging"
	"deckdex/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Format     string
	PrettyJSON bool
	LogFile    string
	LogLevel   string
	Seed       int64
	DraftFile  string

	cfg *config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "deckdex",
		Short:        "DeckDex: MTG card sorter control surface (TUI + scriptable commands)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  deckdex

  # Start the TUI with a draft list loaded (and watched)
  deckdex picks.txt

  # Sort a draft list without a screen
  deckdex draft sort --connected --file picks.txt

  # Scan and export the library
  deckdex classify scan --connected --export ./out --export-format xlsx

  # Build a deck from catalog ids
  deckdex build deck 1 1 4
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.load(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			// Sync fails on some file descriptors; nothing useful to report.
			_ = app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("DECKDEX_CONFIG", ""), "Path to config.toml (default: user config dir)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DECKDEX_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write JSON logs to this file (overrides log.file)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides log.level)")
	cmd.Flags().StringVar(&app.DraftFile, "draft", "", "Load this draft list into the TUI on start")
	cmd.PersistentFlags().Int64Var(&app.Seed, "seed", 0, "Seed for pile display counts (overrides ui.seed; 0 = random)")

	cmd.AddCommand(newDraftCmd(app))
	cmd.AddCommand(newClassifyCmd(app))
	cmd.AddCommand(newBuildCmd(app))
	cmd.AddCommand(newModesCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// load resolves the config file, applies flag overrides and builds the
// logger. Flags win over the file.
func (app *App) load(cmd *cobra.Command) error {
	path, err := app.configPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = app.LogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = app.LogLevel
	}
	if flags.Changed("seed") {
		cfg.UI.Seed = app.Seed
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.log = log.With(zap.String("command", cmd.CommandPath()))
	return nil
}

func (app *App) configPath() (string, error) {
	if p := strings.TrimSpace(app.ConfigPath); p != "" {
		return p, nil
	}
	p, err := config.DefaultPath()
	if err != nil {
		// No user config dir (e.g. HOME unset): run on defaults.
		return "", nil
	}
	return p, nil
}

func runTUI(app *App) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{Config: app.cfg, Log: app.log, ExportDir: wd, DraftFile: app.DraftFile})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	f, err := format.Parse(app.Format)
	if err != nil {
		return writeErr(cmd, err)
	}
	return format.Write(cmd.OutOrStdout(), v, f, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
