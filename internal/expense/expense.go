package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

var ErrNotFound = errors.New("expense not found")

// Expense is money spent by the business on a given day.
type Expense struct {
	ID        uuid.UUID
	Title     string
	Amount    money.Amount
	Date      time.Time
	CreatedAt time.Time
}
