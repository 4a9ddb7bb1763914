package audit

import (
	"context"
	"log/slog"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=audit
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, limit int) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores an entry. It is fire-and-forget: failures are logged and
// never reach the caller.
func (s *Service) Record(ctx context.Context, e Entry) {
	if err := s.repo.CreateEntry(ctx, &e); err != nil {
		slog.Error("failed to record activity",
			"action", e.Action, "entity", e.EntityKind, "title", e.EntityTitle, "error", err)
	}
}

// Recent returns the newest entries first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.repo.ListEntries(ctx, limit)
}
