// Package command holds the quotedesk admin commands: scripted imports, quote
// files, reports and API tokens.
package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/quotedesk/internal/app"
	"github.com/MrJamesThe3rd/quotedesk/internal/config"
)

type options struct {
	cfg    *config.Config
	output string
}

// NewRoot builds the command tree over cfg.
func NewRoot(cfg *config.Config) *cobra.Command {
	opts := &options{cfg: cfg}

	root := &cobra.Command{
		Use:          "quotedesk",
		Short:        "Budget ledger administration",
		Long:         "Manage budgets, catalogs and reports of the quotedesk ledger from scripts and shells.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatTable, "Output format: table, json or yaml")

	root.AddCommand(
		newBudgetsCmd(opts),
		newFinalizeCmd(opts),
		newQuoteCmd(opts),
		newImportCmd(opts),
		newReportCmd(opts),
		newAgendaCmd(opts),
		newTokenCmd(opts),
	)

	return root
}

// withApp opens the configured storage for the duration of fn.
func (o *options) withApp(ctx context.Context, fn func(a *app.App) error) (err error) {
	a, err := app.New(ctx, o.cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	defer func() {
		if cerr := a.Close(); cerr != nil {
			slog.Error("failed to close storage", "error", cerr)

			if err == nil {
				err = cerr
			}
		}
	}()

	return fn(a)
}
