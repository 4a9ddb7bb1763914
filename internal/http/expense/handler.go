package expense

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/respond"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Title  string        `json:"title"`
	Amount money.Amount  `json:"amount"`
	Date   *respond.Date `json:"date,omitempty"`
}

type updateExpenseRequest struct {
	Title  *string       `json:"title,omitempty"`
	Amount *money.Amount `json:"amount,omitempty"`
	Date   *respond.Date `json:"date,omitempty"`
}

type expenseResponse struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Amount    respond.Money `json:"amount"`
	Date      respond.Date  `json:"date"`
	CreatedAt time.Time     `json:"created_at"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    respond.NewMoney(e.Amount),
		Date:      respond.Date{Time: e.Date},
		CreatedAt: e.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	e, err := h.svc.Create(r.Context(), expense.CreateParams{
		Title:  req.Title,
		Amount: req.Amount,
		Date:   respond.DatePtr(req.Date),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	start, end, err := respond.DateRange(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	expenses, err := h.svc.List(r.Context(), expense.ListFilter{StartDate: start, EndDate: end})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateExpenseRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	e, err := h.svc.Update(r.Context(), id, expense.UpdateParams{
		Title:  req.Title,
		Amount: req.Amount,
		Date:   respond.DatePtr(req.Date),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
