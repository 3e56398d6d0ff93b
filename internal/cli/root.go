// Package cli wires the openbible commands. Running the binary without a
// command starts the HTTP server.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
	"github.com/mrlokans/openbible/internal/config"
	"github.com/mrlokans/openbible/internal/entrypoint"
	"github.com/mrlokans/openbible/internal/logging"
)

// App carries what every command needs. Config and Logger are built from the
// environment before a command runs unless they are already set.
type App struct {
	Version string
	Commit  string
	Config  *config.Config
	Logger  *zap.Logger

	translationsPath string
	verbose          bool
}

func NewRootCommand(version, commit string) *cobra.Command {
	return newRootCommand(&App{Version: version, Commit: commit})
}

func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "openbible",
		Short: "Open Bible API - read-only access to Bible translations",
		Long: `openbible serves a directory of Bible translations over a JSON API.

Run without a command to start the HTTP server. The other commands
validate, convert or export the translations directory.`,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.serve(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&app.translationsPath, "translations", "", "translations directory (overrides TRANSLATIONS_PATH)")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCommand(app),
		newValidateCommand(app),
		newRenameBooksCommand(app),
		newMigrateTranslationsCommand(app),
		newOpenAPICommand(app),
		newExportMarkdownCommand(app),
		newExportSQLiteCommand(app),
		newVersionCommand(app),
	)
	return root
}

func (app *App) setup(cmd *cobra.Command, args []string) error {
	if app.Config == nil {
		app.Config = config.NewConfig()
	}
	if app.translationsPath != "" {
		app.Config.Corpus.TranslationsPath = app.translationsPath
	}

	if app.Logger == nil {
		logCfg := app.Config.Log
		if app.verbose {
			logCfg.Level = "debug"
		}
		logger, err := logging.New(logCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		app.Logger = logger
	}
	return nil
}

func (app *App) serve(ctx context.Context) error {
	return entrypoint.Run(ctx, app.Config, app.Logger, app.Version)
}

func (app *App) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cat, err := entrypoint.LoadCatalog(ctx, app.Config, app.Logger, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations from %s: %w", app.Config.Corpus.TranslationsPath, err)
	}
	return cat, nil
}

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.serve(cmd.Context())
		},
	}
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "openbible %s (commit %s)\n", app.Version, app.Commit)
			return err
		},
	}
}
