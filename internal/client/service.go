package client

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	// ListClients returns clients newest first.
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
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
}

func NewService(repo Repository, auditLog AuditLog, notifier Notifier) *Service {
	return &Service{repo: repo, audit: auditLog, notifier: notifier}
}

type CreateParams struct {
	Name    string
	Phone   string
	Address string
}

type UpdateParams struct {
	Name    *string
	Phone   *string
	Address *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, validation.New("name", "name is required")
	}

	c := &Client{
		Name:    name,
		Phone:   strings.TrimSpace(params.Phone),
		Address: strings.TrimSpace(params.Address),
	}

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	s.changed(ctx, audit.ActionCreate, c.Name, "client registered")

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

// Names lists client names in alphabetical order, as offered by the budget
// client selector.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(clients))
	for _, c := range clients {
		names = append(names, c.Name)
	}

	collate.New(language.BrazilianPortuguese, collate.IgnoreCase).SortStrings(names)

	return names, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Client, error) {
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, validation.New("name", "name is required")
	}

	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = strings.TrimSpace(*params.Name)
	}

	if params.Phone != nil {
		c.Phone = strings.TrimSpace(*params.Phone)
	}

	if params.Address != nil {
		c.Address = strings.TrimSpace(*params.Address)
	}

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	s.changed(ctx, audit.ActionEdit, c.Name, "client details updated")

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return err
	}

	s.changed(ctx, audit.ActionDelete, c.Name, "client removed")

	return nil
}

func (s *Service) changed(ctx context.Context, action audit.Action, title, detail string) {
	s.audit.Record(ctx, audit.Entry{
		Action:      action,
		EntityKind:  audit.EntityClient,
		EntityTitle: title,
		Detail:      detail,
	})
	s.notifier.Publish(events.ClientsChanged)
}
