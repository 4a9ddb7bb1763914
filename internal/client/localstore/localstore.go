package localstore

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
)

// Key is the cache key holding the client catalog.
const Key = "clients"

type record struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	clients *localcache.Collection[record]
	now     func() time.Time
}

func New(storage localcache.Storage) *Store {
	return &Store{
		clients: localcache.NewCollection[record](storage, Key),
		now:     time.Now,
	}
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	c.ID = uuid.New()
	c.CreatedAt = s.now().UTC()

	return s.clients.Update(ctx, func(rs []record) ([]record, error) {
		return append(rs, record(*c)), nil
	})
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	rs, err := s.clients.All(ctx)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(rs, func(r record) bool { return r.ID == id })
	if i < 0 {
		return nil, client.ErrNotFound
	}

	return new(client.Client(rs[i])), nil
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	rs, err := s.clients.All(ctx)
	if err != nil {
		return nil, err
	}

	clients := make([]*client.Client, len(rs))
	for i, r := range rs {
		clients[i] = new(client.Client(r))
	}

	slices.SortStableFunc(clients, func(a, b *client.Client) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	return s.clients.Update(ctx, func(rs []record) ([]record, error) {
		i := slices.IndexFunc(rs, func(r record) bool { return r.ID == c.ID })
		if i < 0 {
			return nil, client.ErrNotFound
		}

		rs[i] = record(*c)

		return rs, nil
	})
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.clients.Update(ctx, func(rs []record) ([]record, error) {
		i := slices.IndexFunc(rs, func(r record) bool { return r.ID == id })
		if i < 0 {
			return nil, client.ErrNotFound
		}

		return slices.Delete(rs, i, i+1), nil
	})
}
