package expense

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

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	// ListExpenses returns expenses by date, newest first.
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
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
	Amount money.Amount
	Date   *time.Time
}

// UpdateParams changes only the non-nil fields.
type UpdateParams struct {
	Title  *string
	Amount *money.Amount
	Date   *time.Time
}

// ListFilter bounds expenses by date, both ends inclusive.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, validation.New("title", "title is required")
	}

	amount, err := spent(params.Amount)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		Title:  title,
		Amount: amount,
		Date:   calendar.Today(s.now()),
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	s.changed(ctx, audit.ActionCreate, e.Title, e.Amount.String()+" on "+calendar.FormatDisplay(e.Date))

	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Expense, error) {
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, validation.New("title", "title is required")
	}

	var amount money.Amount

	if params.Amount != nil {
		var err error
		if amount, err = spent(*params.Amount); err != nil {
			return nil, err
		}
	}

	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		e.Title = strings.TrimSpace(*params.Title)
	}

	if params.Amount != nil {
		e.Amount = amount
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	s.changed(ctx, audit.ActionEdit, e.Title, e.Amount.String()+" on "+calendar.FormatDisplay(e.Date))

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}

	s.changed(ctx, audit.ActionDelete, e.Title, e.Amount.String()+" removed")

	return nil
}

// spent accepts an amount in either sign, since expenses are often written
// as "- R$ 250,00", and stores its magnitude.
func spent(a money.Amount) (money.Amount, error) {
	abs, ok := a.Abs()
	if !ok {
		return 0, validation.New("amount", "is out of range")
	}

	if abs == 0 {
		return 0, validation.New("amount", "must be greater than zero")
	}

	return abs, nil
}

func (s *Service) changed(ctx context.Context, action audit.Action, title, detail string) {
	s.audit.Record(ctx, audit.Entry{
		Action:      action,
		EntityKind:  audit.EntityExpense,
		EntityTitle: title,
		Detail:      detail,
	})
	s.notifier.Publish(events.ExpensesChanged)
}
