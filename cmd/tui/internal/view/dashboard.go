package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/dashboard"
)

type DashboardModel struct {
	CommonModel
	dashboard *dashboard.Service

	summary *dashboard.Summary
	loading bool
	err     error
}

func NewDashboardModel(svc *dashboard.Service) DashboardModel {
	return DashboardModel{dashboard: svc, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.loading = false
		m.summary, m.err = msg.summary, msg.err

		return m, nil

	case ChangedMsg:
		// Any change can move a figure; the service has already dropped its cache.
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.dashboard.Invalidate()
			m.loading = true

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading && m.summary == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(r to retry, Esc to back)")
	}

	s := m.summary

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Clients", fmt.Sprint(s.TotalClients)),
		card("Revenue this month", FormatAmount(s.MonthRevenue)),
		card("Expenses this month", FormatAmount(s.MonthExpenses)),
		card("Pending budgets", fmt.Sprint(s.PendingBudgets)),
	)

	var clients strings.Builder
	for _, c := range s.RecentClients {
		fmt.Fprintf(&clients, "  %s  %s\n", c.Name, faint(c.Phone))
	}

	if len(s.RecentClients) == 0 {
		clients.WriteString(faint("  none yet") + "\n")
	}

	var activity strings.Builder
	for _, e := range s.RecentActivity {
		fmt.Fprintf(&activity, "  %s  %-7s %-8s %s\n",
			faint(e.CreatedAt.Local().Format("02/01 15:04")), e.Action, e.EntityKind, e.EntityTitle)
	}

	if len(s.RecentActivity) == 0 {
		activity.WriteString(faint("  nothing recorded") + "\n")
	}

	bold := lipgloss.NewStyle().Bold(true)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		bold.Render("Recent clients"),
		clients.String(),
		bold.Render("Recent activity"),
		activity.String(),
		faint("Updated "+s.GeneratedAt.Local().Format("15:04:05")),
	))
}

func card(label, value string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(subtle).
		Padding(0, 2).
		MarginRight(1).
		Render(faint(label) + "\n" + lipgloss.NewStyle().Bold(true).Foreground(accent).Render(value))
}

type loadSummaryMsg struct {
	summary *dashboard.Summary
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.dashboard.Summary(ctx)

		return loadSummaryMsg{summary: summary, err: err}
	}
}
