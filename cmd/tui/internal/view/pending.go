package view

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
)

// PendingModel walks through pending budgets oldest first so each one can be
// finalized or skipped.
type PendingModel struct {
	CommonModel
	budgets *budget.Service

	queue   []*budget.Budget
	current *budget.Budget

	loading    bool
	saving     bool
	status     string
	totalCount int
	finalized  int
}

func NewPendingModel(budgets *budget.Service) PendingModel {
	return PendingModel{
		budgets: budgets,
		loading: true,
	}
}

func (m PendingModel) Title() string { return "Pending Budgets" }

func (m PendingModel) ShortHelp() string {
	return "f: finalize | n: skip | Esc: back"
}

func (m PendingModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

func (m PendingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "f", "enter":
			if m.current != nil && !m.saving {
				m.saving = true
				return m, m.finalizeCmd(m.current)
			}
		case "n":
			if m.current != nil && !m.saving {
				m.next()
			}
		}

	case loadPendingMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.budgets
		m.totalCount = len(m.queue)
		m.next()

	case finalizeMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			break
		}

		m.finalized++
		m.next()
	}

	return m, nil
}

func (m PendingModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading pending budgets...")
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No pending budgets.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s\n\nFinalized %d of %d.\n\n(Esc to back)", m.status, m.finalized, m.totalCount),
		)
	}

	b := m.current

	var items strings.Builder
	for _, item := range b.Items {
		fmt.Fprintf(&items, "  (%dx) %s  %s\n", item.Quantity, item.ProductName, FormatAmount(item.Subtotal()))
	}

	if len(b.Items) == 0 {
		items.WriteString("  no items\n")
	}

	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(subtle).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"%s\nClient: %s\nDate: %s  |  Delivery: %s\n\n%s\nTotal: %s",
			lipgloss.NewStyle().Bold(true).Render(b.Title),
			b.ClientName,
			FormatDate(b.Date),
			FormatOptionalDate(b.DeliveryDate),
			items.String(),
			activeStyle(FormatAmount(b.Total)),
		))

	statusLine := ""
	if m.status != "" {
		statusLine = "\n" + errorStyle(m.status)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("Pending Budget (%d remaining)\n\n%s\n\n(f to finalize, n to skip, Esc to back)%s",
			len(m.queue)+1, card, statusLine),
	)
}

func (m *PendingModel) next() {
	m.status = ""

	if len(m.queue) == 0 {
		m.current = nil
		m.status = "All done!"

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
}

type loadPendingMsg struct {
	budgets []*budget.Budget
	err     error
}

func (m PendingModel) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.budgets.List(ctx, budget.ListFilter{Status: new(budget.StatusPending)})
		if err != nil {
			return loadPendingMsg{err: err}
		}

		// List is newest first; the queue starts with the oldest.
		slices.Reverse(budgets)

		return loadPendingMsg{budgets: budgets}
	}
}

type finalizeMsg struct {
	err error
}

func (m PendingModel) finalizeCmd(b *budget.Budget) tea.Cmd {
	id := b.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.budgets.SetStatus(ctx, id, budget.StatusFinalized)

		return finalizeMsg{err: err}
	}
}
