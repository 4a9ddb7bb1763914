package budget

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/respond"
)

type itemResponse struct {
	ID        uuid.UUID     `json:"id"`
	Product   string        `json:"product"`
	Quantity  int           `json:"quantity"`
	UnitPrice respond.Money `json:"unit_price"`
	Subtotal  respond.Money `json:"subtotal"`
}

type budgetResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Client       string         `json:"client"`
	Date         respond.Date   `json:"date"`
	DeliveryDate *respond.Date  `json:"delivery_date,omitempty"`
	Status       budget.Status  `json:"status"`
	StatusLabel  string         `json:"status_label"`
	Total        respond.Money  `json:"total"`
	Items        []itemResponse `json:"items"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

func toResponse(b *budget.Budget) budgetResponse {
	resp := budgetResponse{
		ID:          b.ID,
		Title:       b.Title,
		Client:      b.ClientName,
		Date:        respond.Date{Time: b.Date},
		Status:      b.Status,
		StatusLabel: b.Status.Label(),
		Total:       respond.NewMoney(b.Total),
		Items:       make([]itemResponse, len(b.Items)),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if b.DeliveryDate != nil {
		resp.DeliveryDate = &respond.Date{Time: *b.DeliveryDate}
	}

	for i, item := range b.Items {
		resp.Items[i] = itemResponse{
			ID:        item.ID,
			Product:   item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: respond.NewMoney(item.UnitPrice),
			Subtotal:  respond.NewMoney(item.Subtotal()),
		}
	}

	return resp
}

func toResponseList(budgets []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	return resp
}
