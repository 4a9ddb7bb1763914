package localstore

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

// Key is the cache key holding invoices.
const Key = "invoices"

type record struct {
	ID        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Client    string       `json:"client"`
	Amount    money.Amount `json:"amount"`
	Date      string       `json:"date"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type Store struct {
	invoices *localcache.Collection[record]
}

func New(storage localcache.Storage) *Store {
	return &Store{invoices: localcache.NewCollection[record](storage, Key)}
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	inv.ID = uuid.New()

	return s.invoices.Update(ctx, func(rs []record) ([]record, error) {
		return append(rs, toRecord(inv)), nil
	})
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	rs, err := s.invoices.All(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(rs, id)
	if i < 0 {
		return nil, invoice.ErrNotFound
	}

	return fromRecord(rs[i]), nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	rs, err := s.invoices.All(ctx)
	if err != nil {
		return nil, err
	}

	var invoices []*invoice.Invoice

	for _, r := range rs {
		inv := fromRecord(r)

		if filter.StartDate != nil && inv.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && inv.Date.After(*filter.EndDate) {
			continue
		}

		if filter.Client != nil && inv.ClientName != *filter.Client {
			continue
		}

		invoices = append(invoices, inv)
	}

	slices.SortStableFunc(invoices, func(a, b *invoice.Invoice) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return invoices, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	return s.invoices.Update(ctx, func(rs []record) ([]record, error) {
		i := indexOf(rs, inv.ID)
		if i < 0 {
			return nil, invoice.ErrNotFound
		}

		created := rs[i].CreatedAt
		rs[i] = toRecord(inv)
		rs[i].CreatedAt = created

		return rs, nil
	})
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.invoices.Update(ctx, func(rs []record) ([]record, error) {
		i := indexOf(rs, id)
		if i < 0 {
			return nil, invoice.ErrNotFound
		}

		return slices.Delete(rs, i, i+1), nil
	})
}

func indexOf(rs []record, id uuid.UUID) int {
	return slices.IndexFunc(rs, func(r record) bool { return r.ID == id })
}

func toRecord(inv *invoice.Invoice) record {
	return record{
		ID:        inv.ID,
		Title:     inv.Title,
		Client:    inv.ClientName,
		Amount:    inv.Amount,
		Date:      calendar.FormatStorage(inv.Date),
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

func fromRecord(r record) *invoice.Invoice {
	date, err := calendar.ParseStrict(calendar.ToStorage(r.Date))
	if err != nil {
		date = time.Time{}
	}

	return &invoice.Invoice{
		ID:         r.ID,
		Title:      r.Title,
		ClientName: r.Client,
		Amount:     r.Amount,
		Date:       date,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
