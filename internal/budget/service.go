package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, filter ListFilter) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	// ReplaceLineItems deletes every item of b and inserts b.Items, storing b.Total alongside.
	ReplaceLineItems(ctx context.Context, b *Budget) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type AuditLog interface {
	Record(ctx context.Context, e audit.Entry)
}

type Notifier interface {
	Publish(topic events.Topic)
}

type Service struct {
	repo     Repository
	audit    AuditLog
	notifier Notifier
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used for default dates and titles.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, auditLog AuditLog, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		audit:    auditLog,
		notifier: notifier,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	Title        string
	ClientName   string
	Date         *time.Time
	DeliveryDate *time.Time
	Status       Status
	Items        []ItemParams
}

// UpdateParams patches a budget. Nil fields are left untouched; a non-nil
// Items slice replaces the whole item set.
type UpdateParams struct {
	Title         *string
	ClientName    *string
	Date          *time.Time
	DeliveryDate  *time.Time
	ClearDelivery bool
	Items         []ItemParams
}

type ListFilter struct {
	Status     *Status
	ClientName string
	StartDate  *time.Time
	EndDate    *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	clientName := strings.TrimSpace(params.ClientName)
	if clientName == "" {
		return nil, validation.New("client", "client is required")
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	if !status.Valid() {
		return nil, validation.Newf("status", "unknown status %q", status)
	}

	items, err := NormalizeItems(params.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()

	b := &Budget{
		Title:        strings.TrimSpace(params.Title),
		ClientName:   clientName,
		Date:         calendar.Today(now),
		DeliveryDate: params.DeliveryDate,
		Status:       status,
	}

	if b.Title == "" {
		b.Title = defaultTitle(now)
	}

	if params.Date != nil {
		b.Date = *params.Date
	}

	b.SetItems(items)

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:      audit.ActionCreate,
		EntityKind:  audit.EntityBudget,
		EntityTitle: b.Title,
		Detail:      fmt.Sprintf("budget for %s totaling %s", b.ClientName, b.Total),
	})
	s.notifier.Publish(events.BudgetsChanged)

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

// List returns budgets newest first, items included.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Budget, error) {
	if params.ClientName != nil && strings.TrimSpace(*params.ClientName) == "" {
		return nil, validation.New("client", "client is required")
	}

	replaceItems := params.Items != nil

	var items []LineItem

	if replaceItems {
		var err error

		items, err = NormalizeItems(params.Items)
		if err != nil {
			return nil, err
		}
	}

	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil && strings.TrimSpace(*params.Title) != "" {
		b.Title = strings.TrimSpace(*params.Title)
	}

	if params.ClientName != nil {
		b.ClientName = strings.TrimSpace(*params.ClientName)
	}

	if params.Date != nil {
		b.Date = *params.Date
	}

	switch {
	case params.ClearDelivery:
		b.DeliveryDate = nil
	case params.DeliveryDate != nil:
		b.DeliveryDate = params.DeliveryDate
	}

	// Items and total are written together first so a failure on the header
	// update never leaves a total that disagrees with the stored items.
	if replaceItems {
		b.SetItems(items)

		if err := s.repo.ReplaceLineItems(ctx, b); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	detail := "budget details updated"
	if replaceItems {
		detail = fmt.Sprintf("items replaced (%d), total %s", len(b.Items), b.Total)
	}

	s.audit.Record(ctx, audit.Entry{
		Action:      audit.ActionEdit,
		EntityKind:  audit.EntityBudget,
		EntityTitle: b.Title,
		Detail:      detail,
	})
	s.notifier.Publish(events.BudgetsChanged)

	return b, nil
}

// SetStatus moves a budget to status. Setting the current status is a no-op.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Budget, error) {
	if !status.Valid() {
		return nil, validation.Newf("status", "unknown status %q", status)
	}

	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status == status {
		return b, nil
	}

	from := b.Status

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b.Status = status

	s.audit.Record(ctx, audit.Entry{
		Action:      audit.ActionEdit,
		EntityKind:  audit.EntityBudget,
		EntityTitle: b.Title,
		Detail:      transitionDetail(from, status),
	})
	s.notifier.Publish(events.BudgetsChanged)

	return b, nil
}

// Delete removes a budget together with its items.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBudget(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:      audit.ActionDelete,
		EntityKind:  audit.EntityBudget,
		EntityTitle: b.Title,
		Detail:      fmt.Sprintf("budget for %s deleted", b.ClientName),
	})
	s.notifier.Publish(events.BudgetsChanged)

	return nil
}

func defaultTitle(now time.Time) string {
	return "Orçamento #" + now.Format("060102-150405")
}
