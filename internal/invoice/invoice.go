// Package invoice records money billed to clients outside of a budget,
// listed next to expenses in the financial report.
package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

var ErrNotFound = errors.New("invoice not found")

type Invoice struct {
	ID         uuid.UUID
	Title      string
	ClientName string
	Amount     money.Amount
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
