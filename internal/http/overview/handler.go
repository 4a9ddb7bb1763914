// Package overview serves the read-only aggregates: dashboard, financial
// report, delivery agenda and activity log.
package overview

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/agenda"
	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/dashboard"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/respond"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

const defaultActivityLimit = 20

type Handler struct {
	dashboard *dashboard.Service
	agenda    *agenda.Service
	audit     *audit.Service
	now       func() time.Time
}

func NewHandler(dashboardSvc *dashboard.Service, agendaSvc *agenda.Service, auditSvc *audit.Service) *Handler {
	return &Handler{
		dashboard: dashboardSvc,
		agenda:    agendaSvc,
		audit:     auditSvc,
		now:       time.Now,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.summary)
	r.Get("/reports/financial", h.financialReport)
	r.Get("/agenda", h.deliveries)
	r.Get("/activity", h.activity)
}

type clientSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type activityResponse struct {
	Action    audit.Action     `json:"action"`
	Kind      audit.EntityKind `json:"entity"`
	Title     string           `json:"title"`
	Detail    string           `json:"detail,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type summaryResponse struct {
	TotalClients   int                `json:"total_clients"`
	MonthRevenue   respond.Money      `json:"month_revenue"`
	MonthExpenses  respond.Money      `json:"month_expenses"`
	PendingBudgets int                `json:"pending_budgets"`
	RecentClients  []clientSummary    `json:"recent_clients"`
	RecentActivity []activityResponse `json:"recent_activity"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

type reportResponse struct {
	StartDate respond.Date  `json:"start_date"`
	EndDate   respond.Date  `json:"end_date"`
	Revenue   respond.Money `json:"revenue"`
	Expenses  respond.Money `json:"expenses"`
	Invoiced  respond.Money `json:"invoiced"`
	Net       respond.Money `json:"net"`
}

type deliveryResponse struct {
	BudgetID     uuid.UUID     `json:"budget_id"`
	Title        string        `json:"title"`
	Client       string        `json:"client"`
	DeliveryDate respond.Date  `json:"delivery_date"`
	State        agenda.State  `json:"state"`
	DaysUntil    int           `json:"days_until"`
	Status       string        `json:"status"`
	Total        respond.Money `json:"total"`
}

func toActivity(entries []*audit.Entry) []activityResponse {
	resp := make([]activityResponse, len(entries))
	for i, e := range entries {
		resp[i] = activityResponse{
			Action:    e.Action,
			Kind:      e.EntityKind,
			Title:     e.EntityTitle,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		}
	}

	return resp
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.dashboard.Summary(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := summaryResponse{
		TotalClients:   s.TotalClients,
		MonthRevenue:   respond.NewMoney(s.MonthRevenue),
		MonthExpenses:  respond.NewMoney(s.MonthExpenses),
		PendingBudgets: s.PendingBudgets,
		RecentClients:  make([]clientSummary, len(s.RecentClients)),
		RecentActivity: toActivity(s.RecentActivity),
		GeneratedAt:    s.GeneratedAt,
	}

	for i, c := range s.RecentClients {
		resp.RecentClients[i] = clientSummary{ID: c.ID, Name: c.Name}
	}

	respond.JSON(w, http.StatusOK, resp)
}

// financialReport defaults to the current month when no range is given.
func (h *Handler) financialReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := respond.DateRange(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	monthStart, monthEnd := dashboard.MonthRange(h.now())
	if start == nil {
		start = &monthStart
	}

	if end == nil {
		end = &monthEnd
	}

	if end.Before(*start) {
		respond.Error(w, r, validation.New("end_date", "end date is before start date"))
		return
	}

	report, err := h.dashboard.FinancialReport(r.Context(), *start, *end)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, reportResponse{
		StartDate: respond.Date{Time: report.StartDate},
		EndDate:   respond.Date{Time: report.EndDate},
		Revenue:   respond.NewMoney(report.Revenue),
		Expenses:  respond.NewMoney(report.Expenses),
		Invoiced:  respond.NewMoney(report.Invoiced),
		Net:       respond.NewMoney(report.Net()),
	})
}

func (h *Handler) deliveries(w http.ResponseWriter, r *http.Request) {
	includeFinalized := r.URL.Query().Get("all") == "true"

	deliveries, err := h.agenda.Deliveries(r.Context(), includeFinalized)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	now := h.now()

	resp := make([]deliveryResponse, len(deliveries))
	for i, d := range deliveries {
		resp[i] = deliveryResponse{
			BudgetID:     d.Budget.ID,
			Title:        d.Budget.Title,
			Client:       d.Budget.ClientName,
			DeliveryDate: respond.Date{Time: *d.Budget.DeliveryDate},
			State:        d.State,
			DaysUntil:    d.DaysUntil(now),
			Status:       d.Budget.Status.Label(),
			Total:        respond.NewMoney(d.Budget.Total),
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respond.Error(w, r, validation.New("limit", "limit must be a positive integer"))
			return
		}

		limit = n
	}

	entries, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toActivity(entries))
}
