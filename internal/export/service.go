// Package export renders budgets as plain-text quotes ready to be pasted
// into a message or saved next to other documents.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
)

type BudgetGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*budget.Budget, error)
}

// Service builds quote documents from stored budgets.
type Service struct {
	budgets BudgetGetter
	header  string
}

// NewService creates a Service. header, when not empty, is printed as the
// first line of every quote (usually the business name).
func NewService(budgets BudgetGetter, header string) *Service {
	return &Service{budgets: budgets, header: header}
}

// Quote returns the quote text for the budget with the given id.
func (s *Service) Quote(ctx context.Context, id uuid.UUID) (string, error) {
	b, err := s.budgets.Get(ctx, id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := s.Write(&sb, b); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Save writes the quote for id into dir and returns the file path.
func (s *Service) Save(ctx context.Context, id uuid.UUID, dir string) (string, error) {
	b, err := s.budgets.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(b))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.Write(f, b); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

// Write renders b to w.
func (s *Service) Write(w io.Writer, b *budget.Budget) error {
	var sb strings.Builder

	if s.header != "" {
		sb.WriteString(s.header + "\n\n")
	}

	fmt.Fprintf(&sb, "Orçamento: %s\n", b.Title)
	fmt.Fprintf(&sb, "Cliente: %s\n", b.ClientName)
	fmt.Fprintf(&sb, "Data: %s\n", calendar.FormatDisplay(b.Date))

	if b.DeliveryDate != nil {
		fmt.Fprintf(&sb, "Entrega: %s\n", calendar.FormatDisplay(*b.DeliveryDate))
	}

	fmt.Fprintf(&sb, "Status: %s\n\n", statusLabel(b.Status))

	if len(b.Items) == 0 {
		sb.WriteString("Nenhum item\n")
	}

	for _, item := range b.Items {
		fmt.Fprintf(&sb, "(%dx) %s ... %s\n", item.Quantity, item.ProductName, item.Subtotal())
	}

	fmt.Fprintf(&sb, "\nTotal: %s\n", b.Total)

	_, err := io.WriteString(w, sb.String())

	return err
}

// Filename is YYYYMMDD_<title>.txt with the title reduced to safe characters.
func Filename(b *budget.Budget) string {
	safeTitle := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, b.Title)

	return fmt.Sprintf("%s_%s.txt", b.Date.Format("20060102"), safeTitle)
}

func statusLabel(s budget.Status) string {
	if s == budget.StatusFinalized {
		return "Finalizado"
	}

	return "Pendente"
}
