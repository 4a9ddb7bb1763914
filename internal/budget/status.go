package budget

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

// Status is the lifecycle state of a budget. Only finalized budgets count
// toward realized revenue.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFinalized Status = "finalized"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusFinalized
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusFinalized:
		return "Finalized"
	}

	return string(s)
}

// Toggle returns the other state. Both directions are allowed.
func (s Status) Toggle() Status {
	if s == StatusFinalized {
		return StatusPending
	}

	return StatusFinalized
}

// ParseStatus accepts the canonical values as well as the labels used by the
// legacy console ("Pendente", "Rascunho", "Finalizado").
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "pendente", "rascunho", "draft":
		return StatusPending, nil
	case "finalized", "finalizado":
		return StatusFinalized, nil
	}

	return "", validation.Newf("status", "unknown status %q", s)
}

func transitionDetail(from, to Status) string {
	return fmt.Sprintf("status changed from %s to %s", from.Label(), to.Label())
}
