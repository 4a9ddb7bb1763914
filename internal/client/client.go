package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

// Client is a customer budgets are addressed to. Budgets reference clients by
// name only.
type Client struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
}
