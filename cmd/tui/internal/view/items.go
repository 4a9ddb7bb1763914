package view

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

// Items are edited as text, one per line: "2x Banner @ R$ 80,00". The
// quantity defaults to 1 and a missing price is looked up in the catalog.
var quantityPrefix = regexp.MustCompile(`^(\d+)\s*[xX]\s+(.+)$`)

// PriceLookup returns the catalog price of a product by name.
type PriceLookup func(name string) (money.Amount, bool)

// ParseItemLines turns the item editor text into item parameters. Blank
// lines are ignored.
func ParseItemLines(text string, lookup PriceLookup) ([]budget.ItemParams, error) {
	items := []budget.ItemParams{}

	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field := fmt.Sprintf("line %d", n+1)

		var (
			price    money.Amount
			hasPrice bool
		)

		if at := strings.LastIndex(line, "@"); at >= 0 {
			p, err := money.ParseString(line[at+1:])
			if err != nil {
				return nil, validation.Newf(field, "invalid price %q", strings.TrimSpace(line[at+1:]))
			}

			price, hasPrice = p, true
			line = strings.TrimSpace(line[:at])
		}

		qty := 1
		name := line

		if m := quantityPrefix.FindStringSubmatch(line); m != nil {
			q, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, validation.Newf(field, "invalid quantity %q", m[1])
			}

			qty, name = q, strings.TrimSpace(m[2])
		}

		if !hasPrice {
			p, ok := lookup(name)
			if !ok {
				return nil, validation.Newf(field, "%q is not in the catalog, add a price with @", name)
			}

			price = p
		}

		items = append(items, budget.ItemParams{ProductName: name, Quantity: qty, UnitPrice: price})
	}

	return items, nil
}

// FormatItemLines renders items in the editor format.
func FormatItemLines(items []budget.LineItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%dx %s @ %s", item.Quantity, item.ProductName, FormatAmount(item.UnitPrice))
	}

	return strings.Join(lines, "\n")
}
