package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/quotedesk/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/quotedesk/internal/app"
	"github.com/MrJamesThe3rd/quotedesk/internal/config"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/logging"
)

type menuEntry struct {
	key   string
	label string
	open  func(a *app.App, cfg *config.Config) view.View
}

var menu = []menuEntry{
	{"1", "Dashboard", func(a *app.App, _ *config.Config) view.View { return view.NewDashboardModel(a.Dashboard) }},
	{"2", "Budgets", func(a *app.App, cfg *config.Config) view.View {
		return view.NewBudgetsModel(a.Budgets, a.Clients, a.Products, a.Quotes, cfg.Export.Dir)
	}},
	{"3", "Finalize Pending Budgets", func(a *app.App, _ *config.Config) view.View { return view.NewPendingModel(a.Budgets) }},
	{"4", "Delivery Agenda", func(a *app.App, _ *config.Config) view.View { return view.NewAgendaModel(a.Agenda) }},
	{"5", "Clients", func(a *app.App, _ *config.Config) view.View { return view.NewClientsModel(a.Clients) }},
	{"6", "Products", func(a *app.App, _ *config.Config) view.View { return view.NewProductsModel(a.Products) }},
	{"7", "Import Product Sheet", func(a *app.App, _ *config.Config) view.View { return view.NewImportModel(a.Importer) }},
	{"8", "Expenses", func(a *app.App, _ *config.Config) view.View { return view.NewExpensesModel(a.Expenses) }},
	{"9", "Invoices", func(a *app.App, _ *config.Config) view.View { return view.NewInvoicesModel(a.Invoices, a.Clients) }},
	{"0", "Financial Report", func(a *app.App, _ *config.Config) view.View { return view.NewReportModel(a.Dashboard) }},
}

type model struct {
	app *app.App
	cfg *config.Config

	active view.View
	size   *tea.WindowSizeMsg
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v view.View) (tea.Model, tea.Cmd) {
	m.active = v

	cmds := []tea.Cmd{v.Init()}
	if m.size != nil {
		size := *m.size
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = &msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.active == nil {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, entry := range menu {
				if msg.String() == entry.key {
					return m.open(entry.open(m.app, m.cfg))
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.active = nil
		return m, nil
	case view.ImportRequestMsg:
		return m.open(view.NewImportModel(m.app.Importer))
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	if v, ok := next.(view.View); ok {
		m.active = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.active == nil {
		var b strings.Builder

		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.cfg.App.Name) + "\n\n")

		for _, entry := range menu {
			fmt.Fprintf(&b, "%s. %s\n", entry.key, entry.label)
		}

		b.WriteString("\nq. Quit")

		return lipgloss.NewStyle().Padding(2).Render(b.String())
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).PaddingLeft(1).Render(m.active.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.active.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, m.active.View(), help)
}

// forward relays bus notifications into the program so open screens reload.
func forward(bus *events.Bus, p *tea.Program) (stop func()) {
	topics := []events.Topic{events.BudgetsChanged, events.ClientsChanged, events.ProductsChanged, events.ExpensesChanged, events.InvoicesChanged}

	unsubscribe := make([]func(), len(topics))
	for i, topic := range topics {
		unsubscribe[i] = bus.Subscribe(topic, func() {
			p.Send(view.ChangedMsg{Topic: topic})
		})
	}

	return func() {
		for _, u := range unsubscribe {
			u()
		}
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}

	// stdout belongs to the UI.
	closeLog, err := logging.SetupFile(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logging.Fatal("failed to open log file", "path", cfg.Log.File, "error", err)
	}
	defer closeLog()

	services, err := app.New(context.Background(), cfg)
	if err != nil {
		logging.Fatal("failed to open storage", "mode", cfg.Storage.Mode, "error", err)
	}

	p := tea.NewProgram(model{app: services, cfg: cfg}, tea.WithAltScreen())
	stop := forward(services.Bus, p)

	_, runErr := p.Run()

	stop()

	if err := services.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}

	if runErr != nil {
		slog.Error("failed to run TUI", "error", runErr)
		os.Exit(1)
	}
}
