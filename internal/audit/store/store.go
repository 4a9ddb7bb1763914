package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEntry(ctx context.Context, e *audit.Entry) error {
	query := `
		INSERT INTO activity_log (action, entity_kind, entity_title, detail, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, e.Action, e.EntityKind, e.EntityTitle, e.Detail).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating activity entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, limit int) ([]*audit.Entry, error) {
	query := `
		SELECT id, action, entity_kind, entity_title, detail, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	var entries []*audit.Entry

	for rows.Next() {
		var (
			e                  audit.Entry
			action, entityKind string
		)

		if err := rows.Scan(&e.ID, &action, &entityKind, &e.EntityTitle, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}

		e.Action = audit.Action(action)
		e.EntityKind = audit.EntityKind(entityKind)
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity rows: %w", err)
	}

	return entries, nil
}
