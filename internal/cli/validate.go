package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrlokans/openbible/internal/versification"
)

var ErrVersificationMismatch = errors.New("versification differs from the KJV layout")

type ValidateCommand struct {
	Strict      bool
	ShowUnknown bool

	app *App
}

func newValidateCommand(app *App) *cobra.Command {
	c := &ValidateCommand{app: app}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the translations and compare book layouts with the KJV versification",
		Long: `Loads the translations directory exactly as the server does and reports
load errors. Books whose abbreviation is a USFM code are then compared with
the KJV chapter and verse counts. Differences are informational unless
--strict is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&c.Strict, "strict", false, "exit with an error when any book differs from the KJV layout")
	cmd.Flags().BoolVar(&c.ShowUnknown, "show-unknown", false, "list books without a canonical code")
	return cmd
}

func (c *ValidateCommand) Run(ctx context.Context, out io.Writer) error {
	cat, err := c.app.loadCatalog(ctx)
	if err != nil {
		return err
	}

	stats := cat.Stats()
	fmt.Fprintf(out, "Loaded %d language(s), %d translation(s), %d book(s), %d chapter(s), %d verse(s)\n",
		stats.Languages, stats.Translations, stats.Books, stats.Chapters, stats.Verses)
	fmt.Fprintf(out, "Fingerprint: %s\n\n", cat.Fingerprint())

	report := versification.Check(cat)
	fmt.Fprint(out, report.String())
	if c.ShowUnknown {
		for _, path := range report.Unknown {
			fmt.Fprintf(out, "  no canonical code: %s\n", path)
		}
	}

	if c.Strict && !report.OK() {
		return fmt.Errorf("%w: %d mismatch(es)", ErrVersificationMismatch, len(report.Mismatches))
	}
	return nil
}
