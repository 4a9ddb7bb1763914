// Package dashboard aggregates the figures shown on the console's landing
// screen and the financial report.
package dashboard

import (
	"time"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

// Summary is a snapshot of the business for the current month.
type Summary struct {
	TotalClients   int
	MonthRevenue   money.Amount
	MonthExpenses  money.Amount
	PendingBudgets int
	RecentClients  []*client.Client
	RecentActivity []*audit.Entry
	GeneratedAt    time.Time
}

// Report covers realized revenue and expenses over a closed date range.
// Invoiced is billed separately and stays out of Net, since an invoice is
// usually issued for a budget already counted in Revenue.
type Report struct {
	StartDate time.Time
	EndDate   time.Time
	Revenue   money.Amount
	Expenses  money.Amount
	Invoiced  money.Amount
}

// Net is revenue minus expenses.
func (r Report) Net() money.Amount {
	return r.Revenue.Sub(r.Expenses)
}

// MonthRange returns the first and last calendar day of t's month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}
