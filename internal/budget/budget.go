package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

var ErrNotFound = errors.New("budget not found")

// LineItem is one product entry of a budget. It has no lifecycle of its own.
type LineItem struct {
	ID          uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   money.Amount
}

// Subtotal is quantity times unit price.
func (i LineItem) Subtotal() money.Amount {
	return i.UnitPrice.Mul(i.Quantity)
}

// Budget is a price quotation made of line items.
type Budget struct {
	ID           uuid.UUID
	Title        string
	ClientName   string
	Date         time.Time
	DeliveryDate *time.Time
	Status       Status
	Total        money.Amount // Derived from Items, see SetItems
	Items        []LineItem
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// SetItems replaces the item set and the total together.
func (b *Budget) SetItems(items []LineItem) {
	b.Items = items
	b.Total = Total(items)
}

// Reconcile recomputes the total from the items. It returns the previous
// total and whether it disagreed with the items.
func (b *Budget) Reconcile() (money.Amount, bool) {
	stored := b.Total
	b.SetItems(b.Items)

	return stored, stored != b.Total
}

// Consistent reports whether the stored total matches the items.
func (b *Budget) Consistent() bool {
	return b.Total == Total(b.Items)
}
