package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const columns = `id, title, client_name, amount, date, created_at, updated_at`

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (title, client_name, amount, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, inv.Title, inv.ClientName, inv.Amount, inv.Date, inv.CreatedAt).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	inv, err := scan(s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + columns + ` FROM invoices WHERE TRUE`

	var args []any

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	if filter.Client != nil {
		args = append(args, *filter.Client)
		query += fmt.Sprintf(" AND client_name = $%d", len(args))
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `UPDATE invoices SET title = $1, client_name = $2, amount = $3, date = $4, updated_at = $5 WHERE id = $6`

	res, err := s.db.ExecContext(ctx, query, inv.Title, inv.ClientName, inv.Amount, inv.Date, inv.UpdatedAt, inv.ID)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := row.Scan(&inv.ID, &inv.Title, &inv.ClientName, &inv.Amount, &inv.Date, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}

	return &inv, nil
}
