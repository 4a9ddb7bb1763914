// Package agenda lists budgets by delivery date.
package agenda

import (
	"context"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
)

// State classifies a delivery relative to today.
type State string

const (
	StateOverdue   State = "overdue"
	StateToday     State = "today"
	StateScheduled State = "scheduled"
)

type Delivery struct {
	Budget *budget.Budget
	State  State
}

// DaysUntil is negative for overdue deliveries.
func (d Delivery) DaysUntil(now time.Time) int {
	return int(d.Budget.DeliveryDate.Sub(calendar.Today(now)).Hours() / 24)
}

type BudgetLister interface {
	List(ctx context.Context, filter budget.ListFilter) ([]*budget.Budget, error)
}

type Service struct {
	budgets BudgetLister
	now     func() time.Time
}

func NewService(budgets BudgetLister) *Service {
	return &Service{budgets: budgets, now: time.Now}
}

// WithClock returns a copy of the service reading time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	return &Service{budgets: s.budgets, now: now}
}

// Deliveries returns every budget with a delivery date, earliest first. When
// includeFinalized is false, finalized budgets are left out.
func (s *Service) Deliveries(ctx context.Context, includeFinalized bool) ([]Delivery, error) {
	filter := budget.ListFilter{}
	if !includeFinalized {
		filter.Status = new(budget.StatusPending)
	}

	budgets, err := s.budgets.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	today := calendar.Today(s.now())

	var deliveries []Delivery

	for _, b := range budgets {
		if b.DeliveryDate == nil {
			continue
		}

		deliveries = append(deliveries, Delivery{Budget: b, State: classify(*b.DeliveryDate, today)})
	}

	slices.SortStableFunc(deliveries, func(a, b Delivery) int {
		return a.Budget.DeliveryDate.Compare(*b.Budget.DeliveryDate)
	})

	return deliveries, nil
}

func classify(delivery, today time.Time) State {
	d := calendar.Today(delivery)

	switch {
	case d.Before(today):
		return StateOverdue
	case d.Equal(today):
		return StateToday
	default:
		return StateScheduled
	}
}
