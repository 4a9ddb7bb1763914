package command

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/quotedesk/internal/agenda"
	"github.com/MrJamesThe3rd/quotedesk/internal/app"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/dashboard"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

type reportView struct {
	From     string `json:"start_date" yaml:"start_date"`
	To       string `json:"end_date" yaml:"end_date"`
	Revenue  string `json:"revenue" yaml:"revenue"`
	Expenses string `json:"expenses" yaml:"expenses"`
	Invoiced string `json:"invoiced" yaml:"invoiced"`
	Net      string `json:"net_profit" yaml:"net_profit"`
}

func (r reportView) headers() []string {
	return []string{"From", "To", "Revenue", "Expenses", "Net", "Invoiced"}
}

func (r reportView) rows() [][]string {
	return [][]string{{r.From, r.To, r.Revenue, r.Expenses, r.Net, r.Invoiced}}
}

func newReportCmd(opts *options) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Realized revenue, expenses and net profit over a date range",
		Long:  "Dates are DD/MM/YYYY. Without flags the report covers the current month.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end := dashboard.MonthRange(time.Now())

			var err error

			if from != "" {
				if start, err = parseFlagDate("from", from); err != nil {
					return err
				}
			}

			if to != "" {
				if end, err = parseFlagDate("to", to); err != nil {
					return err
				}
			}

			if end.Before(start) {
				return validation.New("to", "end date is before start date")
			}

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				r, err := a.Dashboard.FinancialReport(cmd.Context(), start, end)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), opts.output, reportView{
					From:     calendar.FormatDisplay(r.StartDate),
					To:       calendar.FormatDisplay(r.EndDate),
					Revenue:  r.Revenue.String(),
					Expenses: r.Expenses.String(),
					Invoiced: r.Invoiced.String(),
					Net:      r.Net().String(),
				})
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day of the range (DD/MM/YYYY)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the range (DD/MM/YYYY)")

	return cmd
}

func parseFlagDate(flag, value string) (time.Time, error) {
	t, err := calendar.ParseStrict(value)
	if err != nil {
		return time.Time{}, validation.Newf(flag, "invalid date %q, want DD/MM/YYYY", value)
	}

	return t, nil
}

type deliveryRow struct {
	Date      string `json:"delivery_date" yaml:"delivery_date"`
	State     string `json:"state" yaml:"state"`
	DaysUntil int    `json:"days_until" yaml:"days_until"`
	Title     string `json:"title" yaml:"title"`
	Client    string `json:"client" yaml:"client"`
	Total     string `json:"total" yaml:"total"`
}

type deliveryList []deliveryRow

func (l deliveryList) headers() []string {
	return []string{"Delivery", "State", "Days", "Title", "Client", "Total"}
}

func (l deliveryList) rows() [][]string {
	out := make([][]string, len(l))
	for i, d := range l {
		out[i] = []string{d.Date, d.State, strconv.Itoa(d.DaysUntil), d.Title, d.Client, d.Total}
	}

	return out
}

func newAgendaCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Upcoming and overdue deliveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				deliveries, err := a.Agenda.Deliveries(cmd.Context(), all)
				if err != nil {
					return err
				}

				now := time.Now()

				list := make(deliveryList, len(deliveries))
				for i, d := range deliveries {
					list[i] = toDeliveryRow(d, now)
				}

				return render(cmd.OutOrStdout(), opts.output, list)
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include finalized budgets")

	return cmd
}

func toDeliveryRow(d agenda.Delivery, now time.Time) deliveryRow {
	return deliveryRow{
		Date:      calendar.FormatDisplay(*d.Budget.DeliveryDate),
		State:     string(d.State),
		DaysUntil: d.DaysUntil(now),
		Title:     d.Budget.Title,
		Client:    d.Budget.ClientName,
		Total:     d.Budget.Total.String(),
	}
}
