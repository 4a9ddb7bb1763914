package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (name, price, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, p.Name, p.Price).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	var p product.Product

	err := s.db.QueryRowContext(ctx, `SELECT id, name, price, created_at FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return &p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*product.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, price, created_at FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*product.Product

	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	res, err := s.db.ExecContext(ctx, `UPDATE products SET name = $1, price = $2 WHERE id = $3`, p.Name, p.Price, p.ID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return product.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return product.ErrNotFound
	}

	return nil
}
