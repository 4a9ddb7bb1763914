package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

const recentLimit = 5

//go:generate mockgen -source=service.go -destination=sources_mock.go -package=dashboard
type BudgetLister interface {
	List(ctx context.Context, filter budget.ListFilter) ([]*budget.Budget, error)
}

type ClientLister interface {
	List(ctx context.Context) ([]*client.Client, error)
}

type ExpenseLister interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

type InvoiceLister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

type ActivityLister interface {
	Recent(ctx context.Context, limit int) ([]*audit.Entry, error)
}

type Subscriber interface {
	Subscribe(topic events.Topic, fn func()) (unsubscribe func())
}

// Service computes dashboard figures. The summary is cached until a change
// notification invalidates it.
type Service struct {
	budgets  BudgetLister
	clients  ClientLister
	expenses ExpenseLister
	invoices InvoiceLister
	activity ActivityLister
	now      func() time.Time

	mu     sync.Mutex
	cached *Summary
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithInvoices adds the amount invoiced over the period to financial reports.
func WithInvoices(invoices InvoiceLister) Option {
	return func(s *Service) {
		s.invoices = invoices
	}
}

func NewService(budgets BudgetLister, clients ClientLister, expenses ExpenseLister, activity ActivityLister, opts ...Option) *Service {
	s := &Service{
		budgets:  budgets,
		clients:  clients,
		expenses: expenses,
		activity: activity,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Watch drops the cached summary whenever any entity changes. The returned
// function stops watching.
func (s *Service) Watch(bus Subscriber) (stop func()) {
	topics := []events.Topic{events.BudgetsChanged, events.ClientsChanged, events.ProductsChanged, events.ExpensesChanged, events.InvoicesChanged}

	unsubs := make([]func(), 0, len(topics))
	for _, topic := range topics {
		unsubs = append(unsubs, bus.Subscribe(topic, s.Invalidate))
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached, nil
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	s.cached = summary

	return summary, nil
}

func (s *Service) compute(ctx context.Context) (*Summary, error) {
	now := s.now()
	start, end := MonthRange(now)

	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	budgets, err := s.budgets.List(ctx, budget.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	expenses, err := s.expenses.List(ctx, expense.ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	activity, err := s.activity.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}

	summary := &Summary{
		TotalClients:   len(clients),
		MonthRevenue:   realizedRevenue(budgets, start, end),
		MonthExpenses:  expenseTotal(expenses),
		RecentClients:  clients[:min(recentLimit, len(clients))],
		RecentActivity: activity,
		GeneratedAt:    now,
	}

	for _, b := range budgets {
		if b.Status == budget.StatusPending {
			summary.PendingBudgets++
		}
	}

	return summary, nil
}

// FinancialReport sums finalized budgets and expenses dated within [start, end].
// Invoices are summed on their own and never count as revenue.
func (s *Service) FinancialReport(ctx context.Context, start, end time.Time) (*Report, error) {
	finalized := budget.StatusFinalized

	budgets, err := s.budgets.List(ctx, budget.ListFilter{Status: &finalized, StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	expenses, err := s.expenses.List(ctx, expense.ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	report := &Report{
		StartDate: start,
		EndDate:   end,
		Revenue:   realizedRevenue(budgets, start, end),
		Expenses:  expenseTotal(expenses),
	}

	if s.invoices != nil {
		invoices, err := s.invoices.List(ctx, invoice.ListFilter{StartDate: &start, EndDate: &end})
		if err != nil {
			return nil, fmt.Errorf("listing invoices: %w", err)
		}

		for _, inv := range invoices {
			report.Invoiced = report.Invoiced.Add(inv.Amount)
		}
	}

	return report, nil
}

func realizedRevenue(budgets []*budget.Budget, start, end time.Time) money.Amount {
	var total money.Amount

	for _, b := range budgets {
		if b.Status != budget.StatusFinalized || b.Date.Before(start) || b.Date.After(end) {
			continue
		}

		total = total.Add(b.Total)
	}

	return total
}

func expenseTotal(expenses []*expense.Expense) money.Amount {
	var total money.Amount
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return total
}
