package invoice

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/http/respond"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createInvoiceRequest struct {
	Title  string        `json:"title"`
	Client string        `json:"client"`
	Amount money.Amount  `json:"amount"`
	Date   *respond.Date `json:"date,omitempty"`
}

type updateInvoiceRequest struct {
	Title  *string       `json:"title,omitempty"`
	Client *string       `json:"client,omitempty"`
	Amount *money.Amount `json:"amount,omitempty"`
	Date   *respond.Date `json:"date,omitempty"`
}

type invoiceResponse struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Client    string        `json:"client"`
	Amount    respond.Money `json:"amount"`
	Date      respond.Date  `json:"date"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:        inv.ID,
		Title:     inv.Title,
		Client:    inv.ClientName,
		Amount:    respond.NewMoney(inv.Amount),
		Date:      respond.Date{Time: inv.Date},
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		Title:  req.Title,
		Client: req.Client,
		Amount: req.Amount,
		Date:   respond.DatePtr(req.Date),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	start, end, err := respond.DateRange(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter := invoice.ListFilter{StartDate: start, EndDate: end}
	if c := r.URL.Query().Get("client"); c != "" {
		filter.Client = &c
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateInvoiceRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	inv, err := h.svc.Update(r.Context(), id, invoice.UpdateParams{
		Title:  req.Title,
		Client: req.Client,
		Amount: req.Amount,
		Date:   respond.DatePtr(req.Date),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
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
