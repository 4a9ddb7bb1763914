package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/quotedesk/internal/app"
	"github.com/MrJamesThe3rd/quotedesk/internal/config"
	quotedeskHttp "github.com/MrJamesThe3rd/quotedesk/internal/http"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/auth"
	budgetHandler "github.com/MrJamesThe3rd/quotedesk/internal/http/budget"
	clientHandler "github.com/MrJamesThe3rd/quotedesk/internal/http/client"
	expenseHandler "github.com/MrJamesThe3rd/quotedesk/internal/http/expense"
	invoiceHandler "github.com/MrJamesThe3rd/quotedesk/internal/http/invoice"
	overviewHandler "github.com/MrJamesThe3rd/quotedesk/internal/http/overview"
	productHandler "github.com/MrJamesThe3rd/quotedesk/internal/http/product"
	"github.com/MrJamesThe3rd/quotedesk/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}

	logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := app.New(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to open storage", "mode", cfg.Storage.Mode, "error", err)
	}

	defer func() {
		if err := services.Close(); err != nil {
			slog.Error("failed to close storage", "error", err)
		}
	}()

	opts := quotedeskHttp.Options{AllowedOrigins: cfg.CORS.AllowedOrigins}
	if cfg.Auth.Secret != "" {
		opts.Guard = auth.NewGuard(cfg.Auth.Secret)
	} else {
		slog.Warn("AUTH_SECRET is not set, the API is unauthenticated")
	}

	router := quotedeskHttp.New(quotedeskHttp.Handlers{
		Budgets:  budgetHandler.NewHandler(services.Budgets, services.Quotes),
		Clients:  clientHandler.NewHandler(services.Clients),
		Products: productHandler.NewHandler(services.Products, services.Importer),
		Expenses: expenseHandler.NewHandler(services.Expenses),
		Invoices: invoiceHandler.NewHandler(services.Invoices),
		Overview: overviewHandler.NewHandler(services.Dashboard, services.Agenda, services.Activity),
	}, opts)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr, "storage", cfg.Storage.Mode)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}
}
