package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/config"
	"github.com/mrlokans/openbible/internal/database"
	"github.com/mrlokans/openbible/internal/exporters"
	"github.com/mrlokans/openbible/internal/openapi"
)

type OpenAPICommand struct {
	Format string
	Out    string

	app *App
}

func newOpenAPICommand(app *App) *cobra.Command {
	c := &OpenAPICommand{app: app}
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Write the OpenAPI document",
		Long: `Writes the OpenAPI 3.0 description of the HTTP API. Use --out - to
print it instead of writing a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&c.Format, "format", string(openapi.FormatJSON), "output format: json or yaml")
	cmd.Flags().StringVar(&c.Out, "out", config.DefaultOpenAPIPath, "output file, or - for stdout")
	return cmd
}

func (c *OpenAPICommand) Run(stdout io.Writer) error {
	format, err := openapi.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	document := openapi.New(c.app.Version)

	out := c.Out
	if format == openapi.FormatYAML && out == config.DefaultOpenAPIPath {
		out = strings.TrimSuffix(out, ".json") + ".yaml"
	}

	if out == "-" {
		return document.Write(stdout, format)
	}

	data, err := document.Render(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	c.app.Logger.Info("OpenAPI document written", zap.String("path", out), zap.String("format", string(format)))
	return nil
}

type ExportMarkdownCommand struct {
	Out string

	app *App
}

func newExportMarkdownCommand(app *App) *cobra.Command {
	c := &ExportMarkdownCommand{app: app}
	cmd := &cobra.Command{
		Use:   "export-markdown",
		Short: "Export every book as a Markdown file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&c.Out, "out", "", "output directory (required)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (c *ExportMarkdownCommand) Run(ctx context.Context, out io.Writer) error {
	cat, err := c.app.loadCatalog(ctx)
	if err != nil {
		return err
	}

	result, err := exporters.NewMarkdownExporter(c.Out, c.app.Logger).Export(ctx, cat)
	if err != nil {
		return err
	}
	printExportResult(out, result)
	return nil
}

type ExportSQLiteCommand struct {
	DatabasePath string

	app *App
}

func newExportSQLiteCommand(app *App) *cobra.Command {
	c := &ExportSQLiteCommand{app: app}
	cmd := &cobra.Command{
		Use:   "export-sqlite",
		Short: "Export the translations into a SQLite database",
		Long: `Writes languages, translations, books, chapters and verses into a SQLite
database. Existing catalog rows in the database are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&c.DatabasePath, "db", config.DefaultExportDatabasePath, "path to the SQLite database file")
	return cmd
}

func (c *ExportSQLiteCommand) Run(ctx context.Context, out io.Writer) error {
	cat, err := c.app.loadCatalog(ctx)
	if err != nil {
		return err
	}

	db, err := database.NewDatabase(c.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			c.app.Logger.Warn("Error closing database", zap.Error(err))
		}
	}()

	result, err := exporters.NewSQLiteExporter(db, c.app.Version, c.app.Logger).Export(ctx, cat)
	if err != nil {
		return err
	}
	printExportResult(out, result)
	return nil
}

func printExportResult(out io.Writer, result exporters.ExportResult) {
	fmt.Fprintf(out, "\n=== Export Results ===\n")
	fmt.Fprintf(out, "Translations: %d\n", result.Translations)
	fmt.Fprintf(out, "Books: %d\n", result.Books)
	fmt.Fprintf(out, "Chapters: %d\n", result.Chapters)
	fmt.Fprintf(out, "Verses: %d\n", result.Verses)
	if result.FilesWritten > 0 {
		fmt.Fprintf(out, "Files written: %d\n", result.FilesWritten)
	}
}
