package product

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

var ErrNotFound = errors.New("product not found")

// Product is a catalog entry whose price prefills budget line items.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     money.Amount
	CreatedAt time.Time
}
