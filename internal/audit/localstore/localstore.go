package localstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
)

// Key is the cache key holding the activity log.
const Key = "activity"

// maxEntries bounds the cached log; older entries are dropped.
const maxEntries = 200

type record struct {
	ID          uuid.UUID `json:"id"`
	Action      string    `json:"action"`
	EntityKind  string    `json:"entity_kind"`
	EntityTitle string    `json:"entity_title"`
	Detail      string    `json:"detail"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store struct {
	entries *localcache.Collection[record]
	now     func() time.Time
}

func New(storage localcache.Storage) *Store {
	return &Store{
		entries: localcache.NewCollection[record](storage, Key),
		now:     time.Now,
	}
}

func (s *Store) CreateEntry(ctx context.Context, e *audit.Entry) error {
	e.ID = uuid.New()
	e.CreatedAt = s.now().UTC()

	return s.entries.Update(ctx, func(rs []record) ([]record, error) {
		rs = append([]record{{
			ID:          e.ID,
			Action:      string(e.Action),
			EntityKind:  string(e.EntityKind),
			EntityTitle: e.EntityTitle,
			Detail:      e.Detail,
			CreatedAt:   e.CreatedAt,
		}}, rs...)

		if len(rs) > maxEntries {
			rs = rs[:maxEntries]
		}

		return rs, nil
	})
}

func (s *Store) ListEntries(ctx context.Context, limit int) ([]*audit.Entry, error) {
	rs, err := s.entries.All(ctx)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(rs) > limit {
		rs = rs[:limit]
	}

	entries := make([]*audit.Entry, len(rs))
	for i, r := range rs {
		entries[i] = &audit.Entry{
			ID:          r.ID,
			Action:      audit.Action(r.Action),
			EntityKind:  audit.EntityKind(r.EntityKind),
			EntityTitle: r.EntityTitle,
			Detail:      r.Detail,
			CreatedAt:   r.CreatedAt,
		}
	}

	return entries, nil
}
