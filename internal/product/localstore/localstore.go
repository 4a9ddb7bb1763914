package localstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

// Key is the cache key holding the product catalog.
const Key = "products"

type record struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"`
	CreatedAt time.Time    `json:"created_at"`
}

type Store struct {
	products *localcache.Collection[record]
	now      func() time.Time
}

func New(storage localcache.Storage) *Store {
	return &Store{
		products: localcache.NewCollection[record](storage, Key),
		now:      time.Now,
	}
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	p.ID = uuid.New()
	p.CreatedAt = s.now().UTC()

	return s.products.Update(ctx, func(rs []record) ([]record, error) {
		return append(rs, record(*p)), nil
	})
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	rs, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(rs, id)
	if i < 0 {
		return nil, product.ErrNotFound
	}

	return new(product.Product(rs[i])), nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*product.Product, error) {
	rs, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]*product.Product, len(rs))
	for i, r := range rs {
		products[i] = new(product.Product(r))
	}

	slices.SortStableFunc(products, func(a, b *product.Product) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return products, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	return s.products.Update(ctx, func(rs []record) ([]record, error) {
		i := indexOf(rs, p.ID)
		if i < 0 {
			return nil, product.ErrNotFound
		}

		rs[i] = record(*p)

		return rs, nil
	})
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Update(ctx, func(rs []record) ([]record, error) {
		i := indexOf(rs, id)
		if i < 0 {
			return nil, product.ErrNotFound
		}

		return slices.Delete(rs, i, i+1), nil
	})
}

func indexOf(rs []record, id uuid.UUID) int {
	return slices.IndexFunc(rs, func(r record) bool { return r.ID == id })
}
