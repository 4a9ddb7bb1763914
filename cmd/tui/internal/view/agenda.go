package view

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/agenda"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
)

// deliveryItem wraps a delivery to implement list.Item.
type deliveryItem struct {
	delivery agenda.Delivery
	now      time.Time
}

func (i deliveryItem) Title() string {
	b := i.delivery.Budget
	return fmt.Sprintf("%s  %s  %s  %s", FormatDate(*b.DeliveryDate), stateBadge(i.delivery.State), b.ClientName, b.Title)
}

func (i deliveryItem) Description() string {
	b := i.delivery.Budget

	days := i.delivery.DaysUntil(i.now)

	var when string

	switch {
	case days < 0:
		when = fmt.Sprintf("%d days late", -days)
	case days == 0:
		when = "due today"
	default:
		when = fmt.Sprintf("in %d days", days)
	}

	return fmt.Sprintf("%s  |  %s  |  %s", when, b.Status.Label(), FormatAmount(b.Total))
}

func (i deliveryItem) FilterValue() string {
	return i.delivery.Budget.ClientName + " " + i.delivery.Budget.Title
}

func stateBadge(s agenda.State) string {
	style := lipgloss.NewStyle().Bold(true)

	switch s {
	case agenda.StateOverdue:
		return style.Foreground(errorColor).Render("[overdue]")
	case agenda.StateToday:
		return style.Foreground(lipgloss.Color("214")).Render("[today]")
	}

	return style.Foreground(okColor).Render("[scheduled]")
}

type AgendaModel struct {
	CommonModel
	agenda *agenda.Service

	list             list.Model
	includeFinalized bool
	loading          bool
	status           string
}

func NewAgendaModel(svc *agenda.Service) AgendaModel {
	l := list.New([]list.Item{}, deliveryDelegate{}, 0, 0)
	l.Title = "Delivery Agenda"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return AgendaModel{
		agenda:  svc,
		list:    l,
		loading: true,
	}
}

func (m AgendaModel) Title() string { return "Delivery Agenda" }

func (m AgendaModel) ShortHelp() string {
	return "Esc: back | a: include finalized | /: filter"
}

func (m AgendaModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AgendaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAgendaMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		now := time.Now()

		items := make([]list.Item, len(msg.deliveries))
		for i, d := range msg.deliveries {
			items[i] = deliveryItem{delivery: d, now: now}
		}

		m.status = ""
		if len(items) == 0 {
			m.status = "No deliveries scheduled."
		}

		return m, m.list.SetItems(items)

	case ChangedMsg:
		if msg.Affects(events.BudgetsChanged) {
			return m, m.loadCmd()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "esc":
				return m, Back
			case "a":
				m.includeFinalized = !m.includeFinalized
				return m, m.loadCmd()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m AgendaModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading agenda...")
	}

	scope := "pending only"
	if m.includeFinalized {
		scope = "including finalized"
	}

	header := fmt.Sprintf("Showing: %s", activeStyle(scope))
	if m.status != "" {
		header += "\n" + faint(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(header + "\n" + m.list.View())
}

type loadAgendaMsg struct {
	deliveries []agenda.Delivery
	err        error
}

func (m AgendaModel) loadCmd() tea.Cmd {
	includeFinalized := m.includeFinalized

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		deliveries, err := m.agenda.Deliveries(ctx, includeFinalized)

		return loadAgendaMsg{deliveries: deliveries, err: err}
	}
}

// deliveryDelegate renders items in the list.
type deliveryDelegate struct{}

func (d deliveryDelegate) Height() int                             { return 2 }
func (d deliveryDelegate) Spacing() int                            { return 0 }
func (d deliveryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d deliveryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(deliveryItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(accent).Bold(true).Render("> ") + title
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", faint(i.Description()))
}
