package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

type ProductImporter interface {
	Import(ctx context.Context, params []product.CreateParams) ([]*product.Product, error)
}

type Service struct {
	products ProductImporter
}

func NewService(products ProductImporter) *Service {
	return &Service{products: products}
}

// Import parses a product spreadsheet and adds every row to the catalog.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]*product.Product, error) {
	sheet, err := Parse(r)
	if err != nil {
		return nil, err
	}

	slog.Info("parsed product sheet",
		"charset", sheet.Charset, "profile", sheet.Profile.Name, "rows", len(sheet.Products))

	created, err := s.products.Import(ctx, sheet.Products)
	if err != nil {
		return created, fmt.Errorf("importing products: %w", err)
	}

	return created, nil
}
