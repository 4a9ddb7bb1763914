// Package localstore keeps budgets in the local cache when no database is
// configured.
package localstore

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

// Key is the cache key holding the budget set.
const Key = "budgets"

type itemRecord struct {
	ID          uuid.UUID    `json:"id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"unit_price"`
}

type record struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	ClientName   string       `json:"client_name"`
	Date         string       `json:"date"`
	DeliveryDate string       `json:"delivery_date,omitempty"`
	Status       string       `json:"status"`
	Total        money.Amount `json:"total"`
	Items        []itemRecord `json:"items"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty"`
}

type Store struct {
	budgets *localcache.Collection[record]
	now     func() time.Time
}

func New(storage localcache.Storage) *Store {
	return &Store{
		budgets: localcache.NewCollection[record](storage, Key),
		now:     time.Now,
	}
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	b.ID = uuid.New()
	b.CreatedAt = s.now().UTC()

	return s.budgets.Update(ctx, func(rs []record) ([]record, error) {
		return append(rs, toRecord(b)), nil
	})
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	rs, err := s.budgets.All(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(rs, id)
	if i < 0 {
		return nil, budget.ErrNotFound
	}

	return fromRecord(rs[i]), nil
}

func (s *Store) ListBudgets(ctx context.Context, filter budget.ListFilter) ([]*budget.Budget, error) {
	rs, err := s.budgets.All(ctx)
	if err != nil {
		return nil, err
	}

	var budgets []*budget.Budget

	for _, r := range rs {
		b := fromRecord(r)
		if !matches(b, filter) {
			continue
		}

		budgets = append(budgets, b)
	}

	slices.SortStableFunc(budgets, func(a, b *budget.Budget) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	return s.modify(ctx, b.ID, func(r *record) {
		r.Title = b.Title
		r.ClientName = b.ClientName
		r.Date = calendar.FormatStorage(b.Date)
		r.DeliveryDate = formatOptional(b.DeliveryDate)
		r.UpdatedAt = new(s.now().UTC())
		b.UpdatedAt = r.UpdatedAt
	})
}

// ReplaceLineItems writes items and total in a single cache update.
func (s *Store) ReplaceLineItems(ctx context.Context, b *budget.Budget) error {
	return s.modify(ctx, b.ID, func(r *record) {
		r.Items = toItemRecords(b.Items)
		r.Total = b.Total
		r.UpdatedAt = new(s.now().UTC())
	})
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status budget.Status) error {
	return s.modify(ctx, id, func(r *record) {
		r.Status = string(status)
		r.UpdatedAt = new(s.now().UTC())
	})
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.budgets.Update(ctx, func(rs []record) ([]record, error) {
		i := indexOf(rs, id)
		if i < 0 {
			return nil, budget.ErrNotFound
		}

		return slices.Delete(rs, i, i+1), nil
	})
}

func (s *Store) modify(ctx context.Context, id uuid.UUID, fn func(r *record)) error {
	return s.budgets.Update(ctx, func(rs []record) ([]record, error) {
		i := indexOf(rs, id)
		if i < 0 {
			return nil, budget.ErrNotFound
		}

		fn(&rs[i])

		return rs, nil
	})
}

func matches(b *budget.Budget, filter budget.ListFilter) bool {
	if filter.Status != nil && b.Status != *filter.Status {
		return false
	}

	if filter.ClientName != "" && !strings.Contains(strings.ToLower(b.ClientName), strings.ToLower(filter.ClientName)) {
		return false
	}

	if filter.StartDate != nil && b.Date.Before(*filter.StartDate) {
		return false
	}

	if filter.EndDate != nil && b.Date.After(*filter.EndDate) {
		return false
	}

	return true
}

func indexOf(rs []record, id uuid.UUID) int {
	return slices.IndexFunc(rs, func(r record) bool { return r.ID == id })
}

func toRecord(b *budget.Budget) record {
	return record{
		ID:           b.ID,
		Title:        b.Title,
		ClientName:   b.ClientName,
		Date:         calendar.FormatStorage(b.Date),
		DeliveryDate: formatOptional(b.DeliveryDate),
		Status:       string(b.Status),
		Total:        b.Total,
		Items:        toItemRecords(b.Items),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toItemRecords(items []budget.LineItem) []itemRecord {
	rs := make([]itemRecord, len(items))
	for i, item := range items {
		rs[i] = itemRecord(item)
	}

	return rs
}

// fromRecord rebuilds a budget. Dates written by older versions in display
// form are normalized on the way in, and the total is always recomputed from
// the items.
func fromRecord(r record) *budget.Budget {
	b := &budget.Budget{
		ID:         r.ID,
		Title:      r.Title,
		ClientName: r.ClientName,
		Date:       parseDate(r.Date),
		Status:     budget.Status(r.Status),
		Total:      r.Total,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}

	if r.DeliveryDate != "" {
		b.DeliveryDate = new(parseDate(r.DeliveryDate))
	}

	b.Items = make([]budget.LineItem, len(r.Items))
	for i, item := range r.Items {
		b.Items[i] = budget.LineItem(item)
	}

	if stored, changed := b.Reconcile(); changed {
		slog.Warn("cached budget total disagreed with its items",
			"budget_id", b.ID, "stored", stored, "recomputed", b.Total)
	}

	return b
}

func parseDate(s string) time.Time {
	d, err := calendar.ParseStrict(calendar.ToStorage(s))
	if err != nil {
		return time.Time{}
	}

	return d
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}

	return calendar.FormatStorage(*t)
}
