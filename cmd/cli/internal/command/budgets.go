package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/quotedesk/internal/app"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
)

type budgetRow struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Client   string `json:"client" yaml:"client"`
	Date     string `json:"date" yaml:"date"`
	Delivery string `json:"delivery_date,omitempty" yaml:"delivery_date,omitempty"`
	Status   string `json:"status" yaml:"status"`
	Items    int    `json:"items" yaml:"items"`
	Total    string `json:"total" yaml:"total"`
}

type budgetList []budgetRow

func (l budgetList) headers() []string {
	return []string{"ID", "Title", "Client", "Date", "Delivery", "Status", "Items", "Total"}
}

func (l budgetList) rows() [][]string {
	out := make([][]string, len(l))
	for i, b := range l {
		out[i] = []string{b.ID[:8], b.Title, b.Client, b.Date, b.Delivery, b.Status, strconv.Itoa(b.Items), b.Total}
	}

	return out
}

func toBudgetRow(b *budget.Budget) budgetRow {
	row := budgetRow{
		ID:     b.ID.String(),
		Title:  b.Title,
		Client: b.ClientName,
		Date:   calendar.FormatDisplay(b.Date),
		Status: string(b.Status),
		Items:  len(b.Items),
		Total:  b.Total.String(),
	}

	if b.DeliveryDate != nil {
		row.Delivery = calendar.FormatDisplay(*b.DeliveryDate)
	}

	return row
}

func newBudgetsCmd(opts *options) *cobra.Command {
	var status, clientName string

	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "List budgets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := budget.ListFilter{ClientName: clientName}

			if status != "" {
				s, err := budget.ParseStatus(status)
				if err != nil {
					return err
				}

				filter.Status = &s
			}

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				budgets, err := a.Budgets.List(cmd.Context(), filter)
				if err != nil {
					return err
				}

				list := make(budgetList, len(budgets))
				for i, b := range budgets {
					list[i] = toBudgetRow(b)
				}

				return render(cmd.OutOrStdout(), opts.output, list)
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (pending or finalized)")
	cmd.Flags().StringVarP(&clientName, "client", "c", "", "Filter by client name")

	return cmd
}

func newFinalizeCmd(opts *options) *cobra.Command {
	var reopen bool

	cmd := &cobra.Command{
		Use:   "finalize <budget-id>",
		Short: "Mark a budget as finalized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := budget.StatusFinalized
			if reopen {
				status = budget.StatusPending
			}

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				id, err := resolveBudget(cmd, a, args[0])
				if err != nil {
					return err
				}

				b, err := a.Budgets.SetStatus(cmd.Context(), id, status)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", b.Title, b.Status.Label())

				return err
			})
		},
	}

	cmd.Flags().BoolVar(&reopen, "reopen", false, "Move the budget back to pending instead")

	return cmd
}

func newQuoteCmd(opts *options) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "quote <budget-id>",
		Short: "Print the quote text of a budget or save it as a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				id, err := resolveBudget(cmd, a, args[0])
				if err != nil {
					return err
				}

				if save {
					path, err := a.Quotes.Save(cmd.Context(), id, opts.cfg.Export.Dir)
					if err != nil {
						return err
					}

					_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

					return err
				}

				text, err := a.Quotes.Quote(cmd.Context(), id)
				if err != nil {
					return err
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), text)

				return err
			})
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the quote into the configured quote directory")

	return cmd
}

// resolveBudget accepts a full id or a unique prefix as printed by the table output.
func resolveBudget(cmd *cobra.Command, a *app.App, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return uuid.Nil, budget.ErrNotFound
	}

	budgets, err := a.Budgets.List(cmd.Context(), budget.ListFilter{})
	if err != nil {
		return uuid.Nil, err
	}

	var matches []uuid.UUID

	for _, b := range budgets {
		if strings.HasPrefix(b.ID.String(), ref) {
			matches = append(matches, b.ID)
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, fmt.Errorf("%w: %s", budget.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	}

	return uuid.Nil, fmt.Errorf("budget id %q is ambiguous: %d matches", ref, len(matches))
}
