package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of change an entry records.
type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// EntityKind names the kind of record that changed.
type EntityKind string

const (
	EntityBudget  EntityKind = "budget"
	EntityClient  EntityKind = "client"
	EntityProduct EntityKind = "product"
	EntityExpense EntityKind = "expense"
	EntityInvoice EntityKind = "invoice"
)

// Entry is one line of the activity log.
type Entry struct {
	ID          uuid.UUID
	Action      Action
	EntityKind  EntityKind
	EntityTitle string
	Detail      string
	CreatedAt   time.Time
}
