// Package app wires the services shared by the API and the terminal console
// on top of the configured storage backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/quotedesk/internal/agenda"
	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	auditLocal "github.com/MrJamesThe3rd/quotedesk/internal/audit/localstore"
	auditStore "github.com/MrJamesThe3rd/quotedesk/internal/audit/store"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	budgetLocal "github.com/MrJamesThe3rd/quotedesk/internal/budget/localstore"
	budgetStore "github.com/MrJamesThe3rd/quotedesk/internal/budget/store"
	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	clientLocal "github.com/MrJamesThe3rd/quotedesk/internal/client/localstore"
	clientStore "github.com/MrJamesThe3rd/quotedesk/internal/client/store"
	"github.com/MrJamesThe3rd/quotedesk/internal/config"
	"github.com/MrJamesThe3rd/quotedesk/internal/dashboard"
	"github.com/MrJamesThe3rd/quotedesk/internal/database"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	expenseLocal "github.com/MrJamesThe3rd/quotedesk/internal/expense/localstore"
	expenseStore "github.com/MrJamesThe3rd/quotedesk/internal/expense/store"
	"github.com/MrJamesThe3rd/quotedesk/internal/export"
	"github.com/MrJamesThe3rd/quotedesk/internal/importer"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	invoiceLocal "github.com/MrJamesThe3rd/quotedesk/internal/invoice/localstore"
	invoiceStore "github.com/MrJamesThe3rd/quotedesk/internal/invoice/store"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
	productLocal "github.com/MrJamesThe3rd/quotedesk/internal/product/localstore"
	productStore "github.com/MrJamesThe3rd/quotedesk/internal/product/store"
)

type repositories struct {
	audit    audit.Repository
	budgets  budget.Repository
	clients  client.Repository
	products product.Repository
	expenses expense.Repository
	invoices invoice.Repository
}

// App holds every service. Close releases the storage backend and stops the
// dashboard from watching the bus.
type App struct {
	Bus       *events.Bus
	Activity  *audit.Service
	Budgets   *budget.Service
	Clients   *client.Service
	Products  *product.Service
	Expenses  *expense.Service
	Invoices  *invoice.Service
	Dashboard *dashboard.Service
	Agenda    *agenda.Service
	Importer  *importer.Service
	Quotes    *export.Service

	closers []func() error
}

// New opens the backend selected by cfg.Storage.Mode and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Bus: events.NewBus()}

	var repos repositories

	switch cfg.Storage.Mode {
	case config.StorageLocal:
		cache, err := localcache.Open(cfg.Storage.CachePath)
		if err != nil {
			return nil, fmt.Errorf("opening local cache: %w", err)
		}

		a.closers = append(a.closers, cache.Close)
		repos = repositories{
			audit:    auditLocal.New(cache),
			budgets:  budgetLocal.New(cache),
			clients:  clientLocal.New(cache),
			products: productLocal.New(cache),
			expenses: expenseLocal.New(cache),
			invoices: invoiceLocal.New(cache),
		}

		slog.Info("using local cache storage", "path", cfg.Storage.CachePath)
	default:
		db, err := database.Open(ctx, cfg.ConnectionString(), database.DefaultPool)
		if err != nil {
			return nil, err
		}

		a.closers = append(a.closers, db.Close)

		if err := database.Migrate(ctx, db); err != nil {
			_ = a.Close()
			return nil, err
		}

		repos = repositories{
			audit:    auditStore.New(db),
			budgets:  budgetStore.New(db),
			clients:  clientStore.New(db),
			products: productStore.New(db),
			expenses: expenseStore.New(db),
			invoices: invoiceStore.New(db),
		}

		slog.Info("using postgres storage", "host", cfg.DB.Host, "database", cfg.DB.Name)
	}

	a.Activity = audit.NewService(repos.audit)
	a.Budgets = budget.NewService(repos.budgets, a.Activity, a.Bus)
	a.Clients = client.NewService(repos.clients, a.Activity, a.Bus)
	a.Products = product.NewService(repos.products, a.Activity, a.Bus)
	a.Expenses = expense.NewService(repos.expenses, a.Activity, a.Bus)
	a.Invoices = invoice.NewService(repos.invoices, a.Activity, a.Bus)
	a.Dashboard = dashboard.NewService(a.Budgets, a.Clients, a.Expenses, a.Activity, dashboard.WithInvoices(a.Invoices))
	a.Agenda = agenda.NewService(a.Budgets)
	a.Importer = importer.NewService(a.Products)
	a.Quotes = export.NewService(a.Budgets, cfg.Export.Header)

	stop := a.Dashboard.Watch(a.Bus)
	a.closers = append(a.closers, func() error {
		stop()
		return nil
	})

	return a, nil
}

// Close waits for in-flight notifications and releases resources in reverse
// order of acquisition.
func (a *App) Close() error {
	a.Bus.Wait()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	return errors.Join(errs...)
}
