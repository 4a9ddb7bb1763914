package budget

import (
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/respond"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

type itemRequest struct {
	Product   string       `json:"product"`
	Quantity  int          `json:"quantity"`
	UnitPrice money.Amount `json:"unit_price"`
}

type createBudgetRequest struct {
	Title        string        `json:"title"`
	Client       string        `json:"client"`
	Date         *respond.Date `json:"date,omitempty"`
	DeliveryDate *respond.Date `json:"delivery_date,omitempty"`
	Status       string        `json:"status,omitempty"`
	Items        []itemRequest `json:"items"`
}

func (req createBudgetRequest) params() (budget.CreateParams, error) {
	params := budget.CreateParams{
		Title:        req.Title,
		ClientName:   req.Client,
		Date:         respond.DatePtr(req.Date),
		DeliveryDate: respond.DatePtr(req.DeliveryDate),
		Items:        toItemParams(req.Items),
	}

	if req.Status != "" {
		status, err := budget.ParseStatus(req.Status)
		if err != nil {
			return budget.CreateParams{}, err
		}

		params.Status = status
	}

	return params, nil
}

// updateBudgetRequest distinguishes an absent "items" key (items untouched)
// from an empty list (all items removed).
type updateBudgetRequest struct {
	Title         *string        `json:"title,omitempty"`
	Client        *string        `json:"client,omitempty"`
	Date          *respond.Date  `json:"date,omitempty"`
	DeliveryDate  *respond.Date  `json:"delivery_date,omitempty"`
	ClearDelivery bool           `json:"clear_delivery,omitempty"`
	Items         *[]itemRequest `json:"items,omitempty"`
}

func (req updateBudgetRequest) params() budget.UpdateParams {
	params := budget.UpdateParams{
		Title:         req.Title,
		ClientName:    req.Client,
		Date:          respond.DatePtr(req.Date),
		DeliveryDate:  respond.DatePtr(req.DeliveryDate),
		ClearDelivery: req.ClearDelivery,
	}

	if req.Items != nil {
		params.Items = toItemParams(*req.Items)
	}

	return params
}

func toItemParams(items []itemRequest) []budget.ItemParams {
	params := make([]budget.ItemParams, len(items))
	for i, item := range items {
		params[i] = budget.ItemParams{
			ProductName: item.Product,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return params
}
