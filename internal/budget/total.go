package budget

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

// ItemParams is a line item as entered by the user.
type ItemParams struct {
	ProductName string
	Quantity    int
	UnitPrice   money.Amount
}

// Total sums quantity times unit price over items, in cents.
func Total(items []LineItem) money.Amount {
	var total money.Amount
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// NormalizeItems turns entered items into line items. Items without a
// selected product are left out; quantities below one and negative prices
// are rejected, as are subtotals or totals too large for an Amount.
func NormalizeItems(params []ItemParams) ([]LineItem, error) {
	items := make([]LineItem, 0, len(params))

	var total money.Amount

	for i, p := range params {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}

		if p.Quantity < 1 {
			return nil, validation.Newf(itemField(i, "quantity"), "must be at least 1, got %d", p.Quantity)
		}

		if p.UnitPrice.IsNegative() {
			return nil, validation.Newf(itemField(i, "unit_price"), "must not be negative, got %s", p.UnitPrice)
		}

		subtotal, ok := p.UnitPrice.MulChecked(p.Quantity)
		if !ok {
			return nil, validation.Newf(itemField(i, "quantity"), "%d x %s exceeds the largest amount", p.Quantity, p.UnitPrice)
		}

		if total, ok = total.AddChecked(subtotal); !ok {
			return nil, validation.New("items", "budget total exceeds the largest amount")
		}

		items = append(items, LineItem{
			ID:          uuid.New(),
			ProductName: name,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
		})
	}

	return items, nil
}

func itemField(i int, name string) string {
	return fmt.Sprintf("items[%d].%s", i, name)
}
