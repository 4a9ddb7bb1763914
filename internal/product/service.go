package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	// ListProducts returns products ordered by name.
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
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
	Name  string
	Price money.Amount
}

type UpdateParams struct {
	Name  *string
	Price *money.Amount
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	p, err := newProduct(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.changed(ctx, audit.ActionCreate, p.Name, "price "+p.Price.String())

	return p, nil
}

// Import creates every product in params. Validation runs over the whole set
// before anything is written; the catalog is notified once at the end.
func (s *Service) Import(ctx context.Context, params []CreateParams) ([]*Product, error) {
	products := make([]*Product, 0, len(params))

	for i, cp := range params {
		p, err := newProduct(cp)
		if err != nil {
			return nil, fmt.Errorf("product %d of %d: %w", i+1, len(params), err)
		}

		products = append(products, p)
	}

	if len(products) == 0 {
		return products, nil
	}

	for i, p := range products {
		if err := s.repo.CreateProduct(ctx, p); err != nil {
			if i > 0 {
				s.changed(ctx, audit.ActionCreate, fmt.Sprintf("%d products", i), "partially imported from spreadsheet")
			}

			return products[:i], fmt.Errorf("importing %q: %w", p.Name, err)
		}
	}

	s.changed(ctx, audit.ActionCreate, fmt.Sprintf("%d products", len(products)), "imported from spreadsheet")

	return products, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

// FindByName looks a product up by case-insensitive name.
func (s *Service) FindByName(ctx context.Context, name string) (*Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}

	return nil, ErrNotFound
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Product, error) {
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, validation.New("name", "name is required")
	}

	if params.Price != nil && params.Price.IsNegative() {
		return nil, validation.New("price", "must not be negative")
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		p.Name = strings.TrimSpace(*params.Name)
	}

	if params.Price != nil {
		p.Price = *params.Price
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.changed(ctx, audit.ActionEdit, p.Name, "price "+p.Price.String())

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.changed(ctx, audit.ActionDelete, p.Name, "product removed")

	return nil
}

func (s *Service) changed(ctx context.Context, action audit.Action, title, detail string) {
	s.audit.Record(ctx, audit.Entry{
		Action:      action,
		EntityKind:  audit.EntityProduct,
		EntityTitle: title,
		Detail:      detail,
	})
	s.notifier.Publish(events.ProductsChanged)
}

func newProduct(params CreateParams) (*Product, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, validation.New("name", "name is required")
	}

	if params.Price.IsNegative() {
		return nil, validation.New("price", "must not be negative")
	}

	return &Product{Name: name, Price: params.Price}, nil
}
