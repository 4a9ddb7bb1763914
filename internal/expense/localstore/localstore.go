package localstore

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

// Key is the cache key holding expenses.
const Key = "expenses"

type record struct {
	ID        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Amount    money.Amount `json:"amount"`
	Date      string       `json:"date"`
	CreatedAt time.Time    `json:"created_at"`
}

type Store struct {
	expenses *localcache.Collection[record]
	now      func() time.Time
}

func New(storage localcache.Storage) *Store {
	return &Store{
		expenses: localcache.NewCollection[record](storage, Key),
		now:      time.Now,
	}
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	e.ID = uuid.New()
	e.CreatedAt = s.now().UTC()

	return s.expenses.Update(ctx, func(rs []record) ([]record, error) {
		return append(rs, record{
			ID:        e.ID,
			Title:     e.Title,
			Amount:    e.Amount,
			Date:      calendar.FormatStorage(e.Date),
			CreatedAt: e.CreatedAt,
		}), nil
	})
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	rs, err := s.expenses.All(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(rs, id)
	if i < 0 {
		return nil, expense.ErrNotFound
	}

	return fromRecord(rs[i]), nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	rs, err := s.expenses.All(ctx)
	if err != nil {
		return nil, err
	}

	var expenses []*expense.Expense

	for _, r := range rs {
		e := fromRecord(r)

		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
			continue
		}

		expenses = append(expenses, e)
	}

	slices.SortStableFunc(expenses, func(a, b *expense.Expense) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return expenses, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	return s.expenses.Update(ctx, func(rs []record) ([]record, error) {
		i := indexOf(rs, e.ID)
		if i < 0 {
			return nil, expense.ErrNotFound
		}

		rs[i].Title = e.Title
		rs[i].Amount = e.Amount
		rs[i].Date = calendar.FormatStorage(e.Date)

		return rs, nil
	})
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.expenses.Update(ctx, func(rs []record) ([]record, error) {
		i := indexOf(rs, id)
		if i < 0 {
			return nil, expense.ErrNotFound
		}

		return slices.Delete(rs, i, i+1), nil
	})
}

func indexOf(rs []record, id uuid.UUID) int {
	return slices.IndexFunc(rs, func(r record) bool { return r.ID == id })
}

func fromRecord(r record) *expense.Expense {
	date, err := calendar.ParseStrict(calendar.ToStorage(r.Date))
	if err != nil {
		date = time.Time{}
	}

	return &expense.Expense{
		ID:        r.ID,
		Title:     r.Title,
		Amount:    r.Amount,
		Date:      date,
		CreatedAt: r.CreatedAt,
	}
}
