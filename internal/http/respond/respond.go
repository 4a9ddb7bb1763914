// Package respond holds the JSON and error helpers shared by the API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

var notFound = []error{budget.ErrNotFound, client.ErrNotFound, product.ErrNotFound, expense.ErrNotFound, invoice.ErrNotFound}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps err to a status code: validation failures and unparseable input
// are 400, missing entities 404, anything else 500 with the cause logged.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if vErr, ok := validation.As(err); ok {
		JSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Field: vErr.Field})
		return
	}

	if errors.Is(err, money.ErrInvalidAmount) || errors.Is(err, calendar.ErrInvalidDate) {
		JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			JSON(w, http.StatusNotFound, errorResponse{Error: target.Error()})
			return
		}
	}

	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// Decode reads a JSON body into v. Malformed bodies are reported as 400.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if _, ok := validation.As(err); ok || errors.Is(err, money.ErrInvalidAmount) {
			Error(w, r, err)
			return false
		}

		JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})

		return false
	}

	return true
}

// ID parses the {id} URL parameter.
func ID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id", Field: "id"})
		return uuid.Nil, false
	}

	return id, true
}

// DateRange reads the optional start_date and end_date query parameters in
// either display or storage form.
func DateRange(r *http.Request) (start, end *time.Time, err error) {
	q := r.URL.Query()

	if s := q.Get("start_date"); s != "" {
		t, err := calendar.ParseStrict(s)
		if err != nil {
			return nil, nil, validation.New("start_date", err.Error())
		}

		start = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := calendar.ParseStrict(s)
		if err != nil {
			return nil, nil, validation.New("end_date", err.Error())
		}

		end = &t
	}

	return start, end, nil
}

// Date is a calendar date that accepts "DD/MM/YYYY" or "YYYY-MM-DD" in JSON
// and always encodes as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(calendar.FormatStorage(d.Time))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return validation.New("date", "dates must be strings")
	}

	t, err := calendar.ParseStrict(s)
	if err != nil {
		return validation.New("date", err.Error())
	}

	d.Time = t

	return nil
}

// DatePtr converts an optional Date.
func DatePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}

	return &d.Time
}

// Money is an amount rendered with both its numeric value and display form.
type Money struct {
	Value     money.Amount `json:"value"`
	Formatted string       `json:"formatted"`
}

func NewMoney(a money.Amount) Money {
	return Money{Value: a, Formatted: a.String()}
}
