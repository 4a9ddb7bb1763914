package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/quotedesk/internal/http/auth"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/overview"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/product"
)

type Options struct {
	AllowedOrigins []string
	// Guard is optional; without it the API is open.
	Guard *auth.Guard
}

type Handlers struct {
	Budgets  *budget.Handler
	Clients  *client.Handler
	Products *product.Handler
	Expenses *expense.Handler
	Invoices *invoice.Handler
	Overview *overview.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Guard != nil {
			r.Use(opts.Guard.Middleware)
		}

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Budgets.Routes(r)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Clients.Routes(r)
		})

		r.Route("/products", h.Products.Routes)

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Expenses.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Invoices.Routes(r)
		})

		r.Group(h.Overview.Routes)
	})

	return router
}
