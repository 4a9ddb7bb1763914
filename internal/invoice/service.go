package invoice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	// ListInvoices returns invoices by date, newest first.
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
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

func NewService(repo Repository, auditLog AuditLog, notifier Notifier) *Service {
	return &Service{repo: repo, audit: auditLog, notifier: notifier, now: time.Now}
}

type CreateParams struct {
	Title  string
	Client string
	Amount money.Amount
	Date   *time.Time
}

type UpdateParams struct {
	Title  *string
	Client *string
	Amount *money.Amount
	Date   *time.Time
}

// ListFilter bounds invoices by date, both ends inclusive. Client matches the
// client name exactly when set.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Client    *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, validation.New("title", "title is required")
	}

	clientName := strings.TrimSpace(params.Client)
	if clientName == "" {
		return nil, validation.New("client", "client is required")
	}

	if params.Amount <= 0 {
		return nil, validation.New("amount", "must be greater than zero")
	}

	now := s.now().UTC()
	inv := &Invoice{
		Title:      title,
		ClientName: clientName,
		Amount:     params.Amount,
		Date:       calendar.Today(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if params.Date != nil {
		inv.Date = *params.Date
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	s.changed(ctx, audit.ActionCreate, inv)

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Invoice, error) {
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, validation.New("title", "title is required")
	}

	if params.Client != nil && strings.TrimSpace(*params.Client) == "" {
		return nil, validation.New("client", "client is required")
	}

	if params.Amount != nil && *params.Amount <= 0 {
		return nil, validation.New("amount", "must be greater than zero")
	}

	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		inv.Title = strings.TrimSpace(*params.Title)
	}

	if params.Client != nil {
		inv.ClientName = strings.TrimSpace(*params.Client)
	}

	if params.Amount != nil {
		inv.Amount = *params.Amount
	}

	if params.Date != nil {
		inv.Date = *params.Date
	}

	inv.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	s.changed(ctx, audit.ActionEdit, inv)

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		return err
	}

	s.changed(ctx, audit.ActionDelete, inv)

	return nil
}

func (s *Service) changed(ctx context.Context, action audit.Action, inv *Invoice) {
	detail := inv.Amount.String() + " to " + inv.ClientName + " on " + calendar.FormatDisplay(inv.Date)
	if action == audit.ActionDelete {
		detail = inv.Amount.String() + " to " + inv.ClientName + " removed"
	}

	s.audit.Record(ctx, audit.Entry{
		Action:      action,
		EntityKind:  audit.EntityInvoice,
		EntityTitle: inv.Title,
		Detail:      detail,
	})
	s.notifier.Publish(events.InvoicesChanged)
}
