package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// reconcile recomputes the total of a loaded budget from its items.
func reconcile(b *budget.Budget) {
	if stored, changed := b.Reconcile(); changed {
		slog.Warn("stored budget total disagreed with its items",
			"budget_id", b.ID, "stored", stored, "recomputed", b.Total)
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, title, client_name, date, delivery_date, status, total, created_at, updated_at
func scanBudget(s scanner) (*budget.Budget, error) {
	var (
		b         budget.Budget
		status    string
		delivery  sql.NullTime
		updatedAt sql.NullTime
	)

	if err := s.Scan(
		&b.ID, &b.Title, &b.ClientName, &b.Date, &delivery, &status, &b.Total,
		&b.CreatedAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = budget.Status(status)

	if delivery.Valid {
		b.DeliveryDate = &delivery.Time
	}

	if updatedAt.Valid {
		b.UpdatedAt = &updatedAt.Time
	}

	return &b, nil
}

const selectBudgetColumns = `
	b.id, b.title, b.client_name, b.date, b.delivery_date, b.status, b.total, b.created_at, b.updated_at
`

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO budgets (title, client_name, date, delivery_date, status, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		b.Title,
		b.ClientName,
		b.Date,
		b.DeliveryDate,
		b.Status,
		b.Total,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	if err := insertItems(ctx, dbTx, b.ID, b.Items); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets b WHERE b.id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	items, err := s.listItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	b.Items = items[id]
	reconcile(b)

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, filter budget.ListFilter) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets b WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND b.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ClientName != "" {
		query += fmt.Sprintf(" AND b.client_name ILIKE $%d", argIdx)

		args = append(args, "%"+filter.ClientName+"%")
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND b.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND b.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY b.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var (
		budgets []*budget.Budget
		ids     []uuid.UUID
	)

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
		ids = append(ids, b.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	if len(ids) == 0 {
		return budgets, nil
	}

	items, err := s.listItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, b := range budgets {
		b.Items = items[b.ID]
		reconcile(b)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET title = $1, client_name = $2, date = $3, delivery_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.Title,
		b.ClientName,
		b.Date,
		b.DeliveryDate,
		b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return budget.ErrNotFound
		}

		return fmt.Errorf("updating budget: %w", err)
	}

	return nil
}

// ReplaceLineItems swaps the item set and the stored total in one database
// transaction.
func (s *Store) ReplaceLineItems(ctx context.Context, b *budget.Budget) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx, `UPDATE budgets SET total = $1, updated_at = NOW() WHERE id = $2`, b.Total, b.ID)
	if err != nil {
		return fmt.Errorf("updating total: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return budget.ErrNotFound
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM budget_items WHERE budget_id = $1`, b.ID); err != nil {
		return fmt.Errorf("deleting items: %w", err)
	}

	if err := insertItems(ctx, dbTx, b.ID, b.Items); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status budget.Status) error {
	query := `
		UPDATE budgets
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

// DeleteBudget removes the budget; its items go with it through ON DELETE CASCADE.
func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func insertItems(ctx context.Context, dbTx *sql.Tx, budgetID uuid.UUID, items []budget.LineItem) error {
	query := `
		INSERT INTO budget_items (id, budget_id, position, product_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i, item := range items {
		_, err := dbTx.ExecContext(ctx, query,
			item.ID,
			budgetID,
			i,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("inserting item %q: %w", item.ProductName, err)
		}
	}

	return nil
}

func (s *Store) listItems(ctx context.Context, budgetIDs []uuid.UUID) (map[uuid.UUID][]budget.LineItem, error) {
	query := `
		SELECT budget_id, id, product_name, quantity, unit_price
		FROM budget_items
		WHERE budget_id = ANY($1::uuid[])
		ORDER BY budget_id, position
	`

	rows, err := s.db.QueryContext(ctx, query, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]budget.LineItem, len(budgetIDs))

	for rows.Next() {
		var (
			budgetID uuid.UUID
			item     budget.LineItem
		)

		if err := rows.Scan(&budgetID, &item.ID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items[budgetID] = append(items[budgetID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}
