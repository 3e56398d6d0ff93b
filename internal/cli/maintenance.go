package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrlokans/openbible/internal/maintenance"
)

type RenameBooksCommand struct {
	Skip   []string
	DryRun bool

	app *App
}

func newRenameBooksCommand(app *App) *cobra.Command {
	c := &RenameBooksCommand{app: app}
	cmd := &cobra.Command{
		Use:   "rename-books",
		Short: "Rename book directories from English names to USFM codes",
		Long: `Renames book directories such as "Genesis" or "I Samuel" to their USFM
codes (GEN, 1SA) and sets the abbreviation in each book's metadata.json.
Directories that already use a code get their metadata corrected.

Examples:
  openbible rename-books --dry-run
  openbible rename-books --skip english/WEB --skip english/KJV`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringArrayVar(&c.Skip, "skip", nil, "language/translation directory to leave untouched (repeatable)")
	cmd.Flags().BoolVar(&c.DryRun, "dry-run", false, "report what would change without touching files")
	return cmd
}

func (c *RenameBooksCommand) Run(out io.Writer) error {
	root := c.app.Config.Corpus.TranslationsPath
	result, err := maintenance.RenameBooks(root, maintenance.RenameBooksOptions{
		Skip:   c.Skip,
		DryRun: c.DryRun,
	}, c.app.Logger)
	if err != nil {
		return err
	}

	verb := "Renamed"
	if c.DryRun {
		verb = "Would rename"
	}
	fmt.Fprintf(out, "%s %d book directories\n", verb, len(result.Renamed))
	fmt.Fprintf(out, "Metadata fixed: %d\n", len(result.MetadataFixed))
	fmt.Fprintf(out, "Skipped (destination exists): %d\n", len(result.Conflicts))
	for _, path := range result.Conflicts {
		fmt.Fprintf(out, "  %s\n", path)
	}
	fmt.Fprintf(out, "No USFM code: %d\n", len(result.Unmapped))
	return nil
}

type MigrateTranslationsCommand struct {
	Language string

	app *App
}

func newMigrateTranslationsCommand(app *App) *cobra.Command {
	c := &MigrateTranslationsCommand{app: app}
	cmd := &cobra.Command{
		Use:   "migrate-translations",
		Short: "Interactively convert legacy translation metadata to the current format",
		Long: `Finds translations whose metadata.json still has the legacy
abbreviation/uid/info fields and asks for a display name, alternative name,
abbreviation and description for each. Answer "skip" to leave a translation
as it is or "exit" to stop. When the abbreviation changes the directory is
renamed to match, unless that name is taken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&c.Language, "lang", "", "only process this language directory")
	return cmd
}

func (c *MigrateTranslationsCommand) Run(in io.Reader, out io.Writer) error {
	root := c.app.Config.Corpus.TranslationsPath
	prompter := maintenance.NewLinePrompter(in, out)

	_, err := maintenance.MigrateTranslations(root, maintenance.MigrateOptions{Language: c.Language}, prompter, out, c.app.Logger)
	return err
}
