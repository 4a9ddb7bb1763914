package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/agenda"
	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	auditstore "github.com/MrJamesThe3rd/quotedesk/internal/audit/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	budgetstore "github.com/MrJamesThe3rd/quotedesk/internal/budget/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	clientstore "github.com/MrJamesThe3rd/quotedesk/internal/client/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/dashboard"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	expensestore "github.com/MrJamesThe3rd/quotedesk/internal/expense/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/export"
	api "github.com/MrJamesThe3rd/quotedesk/internal/http"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/auth"
	budgethttp "github.com/MrJamesThe3rd/quotedesk/internal/http/budget"
	clienthttp "github.com/MrJamesThe3rd/quotedesk/internal/http/client"
	expensehttp "github.com/MrJamesThe3rd/quotedesk/internal/http/expense"
	invoicehttp "github.com/MrJamesThe3rd/quotedesk/internal/http/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/overview"
	producthttp "github.com/MrJamesThe3rd/quotedesk/internal/http/product"
	"github.com/MrJamesThe3rd/quotedesk/internal/importer"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	invoicestore "github.com/MrJamesThe3rd/quotedesk/internal/invoice/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
	productstore "github.com/MrJamesThe3rd/quotedesk/internal/product/localstore"
)

type server struct {
	t       *testing.T
	handler http.Handler
	bus     *events.Bus
	token   string
}

func newServer(t *testing.T, guard *auth.Guard) *server {
	t.Helper()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = cache.Close() })

	bus := events.NewBus()
	activity := audit.NewService(auditstore.New(cache))

	budgets := budget.NewService(budgetstore.New(cache), activity, bus)
	clients := client.NewService(clientstore.New(cache), activity, bus)
	products := product.NewService(productstore.New(cache), activity, bus)
	expenses := expense.NewService(expensestore.New(cache), activity, bus)
	invoices := invoice.NewService(invoicestore.New(cache), activity, bus)

	dash := dashboard.NewService(budgets, clients, expenses, activity, dashboard.WithInvoices(invoices))
	t.Cleanup(dash.Watch(bus))

	handler := api.New(api.Handlers{
		Budgets:  budgethttp.NewHandler(budgets, export.NewService(budgets, "")),
		Clients:  clienthttp.NewHandler(clients),
		Products: producthttp.NewHandler(products, importer.NewService(products)),
		Expenses: expensehttp.NewHandler(expenses),
		Invoices: invoicehttp.NewHandler(invoices),
		Overview: overview.NewHandler(dash, agenda.NewService(budgets), activity),
	}, api.Options{AllowedOrigins: []string{"*"}, Guard: guard})

	return &server{t: t, handler: handler, bus: bus}
}

func (s *server) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)

		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	// Let change notifications settle before the next request reads aggregates.
	s.bus.Wait()

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

type money struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

type budgetBody struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Client string `json:"client"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Total  money  `json:"total"`
	Items  []struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
		Subtotal money  `json:"subtotal"`
	} `json:"items"`
}

func TestBudgetLifecycle(t *testing.T) {
	s := newServer(t, nil)

	rec := s.do(http.MethodPost, "/api/v1/budgets", map[string]any{
		"client":        "Ana",
		"date":          "15/03/2024",
		"delivery_date": "2024-03-20",
		"items": []map[string]any{
			{"product": "Banner", "quantity": 2, "unit_price": "R$ 80,00"},
			{"product": "Plate", "quantity": 1, "unit_price": 150},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[budgetBody](t, rec)
	assert.Equal(t, "R$ 310,00", created.Total.Formatted)
	assert.InDelta(t, 310.0, created.Total.Value, 0.001)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "2024-03-15", created.Date)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "R$ 160,00", created.Items[0].Subtotal.Formatted)

	rec = s.do(http.MethodPatch, "/api/v1/budgets/"+created.ID, map[string]any{
		"items": []map[string]any{{"product": "Sticker", "quantity": 3, "unit_price": "25.00"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	edited := decode[budgetBody](t, rec)
	assert.Equal(t, "R$ 75,00", edited.Total.Formatted)
	require.Len(t, edited.Items, 1)
	assert.Equal(t, "Sticker", edited.Items[0].Product)

	rec = s.do(http.MethodPatch, "/api/v1/budgets/"+created.ID+"/status", map[string]any{"status": "finalized"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "finalized", decode[budgetBody](t, rec).Status)

	rec = s.do(http.MethodGet, "/api/v1/budgets/"+created.ID+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "(3x) Sticker")
	assert.Contains(t, rec.Body.String(), "Total: R$ 75,00")

	rec = s.do(http.MethodGet, "/api/v1/budgets?status=finalized", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]budgetBody](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/v1/budgets?status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]budgetBody](t, rec))

	rec = s.do(http.MethodDelete, "/api/v1/budgets/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/budgets/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/activity", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	activity := decode[[]struct {
		Action string `json:"action"`
		Entity string `json:"entity"`
	}](t, rec)
	require.Len(t, activity, 4)
	assert.Equal(t, "delete", activity[0].Action)
	assert.Equal(t, "budget", activity[0].Entity)
}

func TestBudgetValidation(t *testing.T) {
	s := newServer(t, nil)

	type testCase struct {
		body      any
		wantField string
	}

	tests := map[string]testCase{
		"missing client": {
			body:      map[string]any{"items": []any{}},
			wantField: "client",
		},
		"zero quantity": {
			body: map[string]any{
				"client": "Ana",
				"items":  []map[string]any{{"product": "Banner", "quantity": 0, "unit_price": 80}},
			},
			wantField: "items[0].quantity",
		},
		"bad date": {
			body:      map[string]any{"client": "Ana", "date": "31/02/2024"},
			wantField: "date",
		},
		"unknown status": {
			body:      map[string]any{"client": "Ana", "status": "archived"},
			wantField: "status",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/v1/budgets", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[struct {
				Field string `json:"field"`
			}](t, rec)
			assert.Equal(t, tc.wantField, body.Field)
		})
	}

	rec := s.do(http.MethodGet, "/api/v1/budgets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]budgetBody](t, rec))
}

func TestBadIDAndMissingEntity(t *testing.T) {
	s := newServer(t, nil)

	rec := s.do(http.MethodGet, "/api/v1/budgets/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/clients/6f1c2b9e-8f5d-4c1a-9d3e-2b7a6c5d4e3f", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductImport(t *testing.T) {
	s := newServer(t, nil)

	var body bytes.Buffer

	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "produtos.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte("Nome;Preço\nBanner;R$ 80,00\nPlate;150.00\n"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	s.bus.Wait()

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	imported := decode[struct {
		Imported int `json:"imported"`
	}](t, rec)
	assert.Equal(t, 2, imported.Imported)

	rec = s.do(http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	products := decode[[]struct {
		Name  string `json:"name"`
		Price money  `json:"price"`
	}](t, rec)
	require.Len(t, products, 2)
	assert.Equal(t, "Banner", products[0].Name)
	assert.Equal(t, "R$ 80,00", products[0].Price.Formatted)
}

func TestProductImportWithoutHeader(t *testing.T) {
	s := newServer(t, nil)

	var body bytes.Buffer

	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "lixo.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte("a;b\n1;2\n"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardAndReport(t *testing.T) {
	s := newServer(t, nil)
	today := time.Now().Format("2006-01-02")

	rec := s.do(http.MethodPost, "/api/v1/clients", map[string]any{"name": "Ana", "phone": "11 99999-0000"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/budgets", map[string]any{
		"client": "Ana",
		"date":   today,
		"status": "finalized",
		"items":  []map[string]any{{"product": "Banner", "quantity": 2, "unit_price": 80}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/budgets", map[string]any{"client": "Bia"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/expenses", map[string]any{"title": "Tinta", "amount": "R$ 40,00", "date": today})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	summary := decode[struct {
		TotalClients   int   `json:"total_clients"`
		PendingBudgets int   `json:"pending_budgets"`
		MonthRevenue   money `json:"month_revenue"`
		MonthExpenses  money `json:"month_expenses"`
	}](t, rec)
	assert.Equal(t, 1, summary.TotalClients)
	assert.Equal(t, 1, summary.PendingBudgets)
	assert.Equal(t, "R$ 160,00", summary.MonthRevenue.Formatted)
	assert.Equal(t, "R$ 40,00", summary.MonthExpenses.Formatted)

	rec = s.do(http.MethodGet, "/api/v1/reports/financial", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[struct {
		Net money `json:"net"`
	}](t, rec)
	assert.Equal(t, "R$ 120,00", report.Net.Formatted)

	rec = s.do(http.MethodGet, "/api/v1/reports/financial?start_date=2024-03-31&end_date=2024-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpenseEdit(t *testing.T) {
	s := newServer(t, nil)

	rec := s.do(http.MethodPost, "/api/v1/expenses", map[string]any{
		"title":  "Material de impressão",
		"amount": "- R$ 250,00",
		"date":   "01/06/2024",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[struct {
		ID     string `json:"id"`
		Amount money  `json:"amount"`
	}](t, rec)
	assert.Equal(t, "R$ 250,00", created.Amount.Formatted)

	rec = s.do(http.MethodPatch, "/api/v1/expenses/"+created.ID, map[string]any{"amount": "R$ 275,50", "date": "2024-06-03"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	edited := decode[struct {
		Title  string `json:"title"`
		Amount money  `json:"amount"`
		Date   string `json:"date"`
	}](t, rec)
	assert.Equal(t, "Material de impressão", edited.Title)
	assert.Equal(t, "R$ 275,50", edited.Amount.Formatted)
	assert.Equal(t, "2024-06-03", edited.Date)

	rec = s.do(http.MethodPatch, "/api/v1/expenses/"+created.ID, map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/api/v1/expenses/6f1c2b9e-8f5d-4c1a-9d3e-2b7a6c5d4e3f", map[string]any{"title": "Gás"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvoices(t *testing.T) {
	s := newServer(t, nil)

	type invoiceBody struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Client string `json:"client"`
		Amount money  `json:"amount"`
		Date   string `json:"date"`
	}

	rec := s.do(http.MethodPost, "/api/v1/invoices", map[string]any{
		"title":  "Banner personalizado",
		"client": "João Silva",
		"amount": "+ R$ 120,00",
		"date":   "02/06/2024",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	banner := decode[invoiceBody](t, rec)
	assert.Equal(t, "R$ 120,00", banner.Amount.Formatted)
	assert.Equal(t, "2024-06-02", banner.Date)

	rec = s.do(http.MethodPost, "/api/v1/invoices", map[string]any{
		"title":  "Adesivos diversos",
		"client": "Maria Santos",
		"amount": 85,
		"date":   "2024-06-04",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/invoices", map[string]any{"title": "Sem cliente", "amount": 10})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "client", decode[struct {
		Field string `json:"field"`
	}](t, rec).Field)

	rec = s.do(http.MethodGet, "/api/v1/invoices?client=Jo%C3%A3o%20Silva", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]invoiceBody](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, banner.ID, listed[0].ID)

	rec = s.do(http.MethodPatch, "/api/v1/invoices/"+banner.ID, map[string]any{"amount": "R$ 130,00"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "R$ 130,00", decode[invoiceBody](t, rec).Amount.Formatted)

	rec = s.do(http.MethodPost, "/api/v1/expenses", map[string]any{"title": "Energia", "amount": 180, "date": "2024-06-03"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/reports/financial?start_date=01/06/2024&end_date=30/06/2024", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	report := decode[struct {
		Revenue  money `json:"revenue"`
		Invoiced money `json:"invoiced"`
		Net      money `json:"net"`
	}](t, rec)
	assert.Equal(t, "R$ 0,00", report.Revenue.Formatted)
	assert.Equal(t, "R$ 215,00", report.Invoiced.Formatted)
	assert.Equal(t, "-R$ 180,00", report.Net.Formatted)

	rec = s.do(http.MethodDelete, "/api/v1/invoices/"+banner.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/invoices/"+banner.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/activity", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	activity := decode[[]struct {
		Action string `json:"action"`
		Entity string `json:"entity"`
	}](t, rec)
	require.NotEmpty(t, activity)
	assert.Equal(t, "delete", activity[0].Action)
	assert.Equal(t, "invoice", activity[0].Entity)
}

func TestAgenda(t *testing.T) {
	s := newServer(t, nil)
	tomorrow := time.Now().AddDate(0, 0, 1).Format("02/01/2006")

	rec := s.do(http.MethodPost, "/api/v1/budgets", map[string]any{
		"client":        "Ana",
		"delivery_date": tomorrow,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/budgets", map[string]any{"client": "Bia"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/agenda", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	deliveries := decode[[]struct {
		Client string `json:"client"`
		State  string `json:"state"`
	}](t, rec)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "Ana", deliveries[0].Client)
	assert.Equal(t, "scheduled", deliveries[0].State)
}

func TestAuthGuard(t *testing.T) {
	guard := auth.NewGuard("s3cret")
	s := newServer(t, guard)

	rec := s.do(http.MethodGet, "/api/v1/clients", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	token, err := guard.Issue("console", time.Hour)
	require.NoError(t, err)

	s.token = token

	rec = s.do(http.MethodGet, "/api/v1/clients", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}
