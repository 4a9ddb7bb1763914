package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/export"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

type budgetsState int

const (
	budgetsStateBrowse budgetsState = iota
	budgetsStateForm
	budgetsStateConfirmDelete
)

var (
	statusFilters = []*budget.Status{nil, new(budget.StatusPending), new(budget.StatusFinalized)}
	dateFilters   = []Timeframe{TimeframeAll, TimeframeThisMonth, TimeframeLastMonth}
)

type BudgetsModel struct {
	CommonModel
	budgets  *budget.Service
	clients  *client.Service
	products *product.Service
	quotes   *export.Service
	quoteDir string

	state   budgetsState
	table   table.Model
	list    []*budget.Budget
	form    *huh.Form
	binding *budgetForm
	confirm *bool

	statusFilterIdx int
	dateFilterIdx   int

	loading bool
	saving  bool
	err     error
	status  string
}

func NewBudgetsModel(budgets *budget.Service, clients *client.Service, products *product.Service, quotes *export.Service, quoteDir string) BudgetsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Client", Width: 20},
		{Title: "Title", Width: 28},
		{Title: "Status", Width: 10},
		{Title: "Total", Width: 14},
		{Title: "Delivery", Width: 12},
	}

	return BudgetsModel{
		budgets:  budgets,
		clients:  clients,
		products: products,
		quotes:   quotes,
		quoteDir: quoteDir,
		table:    newTable(columns),
		loading:  true,
	}
}

// newTable builds a focused table with the shared styling.
func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(subtle).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	switch m.state {
	case budgetsStateForm:
		return "Navigate form | Esc: cancel"
	case budgetsStateConfirmDelete:
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | f: toggle status | x: delete | q: save quote | s: status | d: date | r: refresh"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBudgetsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.list = msg.budgets
		m.refreshTable()

		return m, nil

	case ChangedMsg:
		if msg.Affects(events.BudgetsChanged) {
			return m, m.loadCmd()
		}

		return m, nil

	case budgetFormDataMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.binding = newBudgetForm(msg.editing, FormatDate(calendar.Today(time.Now())), msg.products)
		m.form = m.binding.build(msg.clientNames)
		m.state = budgetsStateForm
		m.table.Blur()

		return m, m.form.Init()

	case budgetSavedMsg:
		m.saving = false
		m.status = msg.status

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.closeForm()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case budgetsStateForm:
		return m.updateForm(msg)
	case budgetsStateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m.updateBrowse(msg)
}

func (m BudgetsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m, m.formDataCmd(nil)
		case "e":
			if b := m.selected(); b != nil {
				return m, m.formDataCmd(b)
			}
		case "f":
			if b := m.selected(); b != nil && !m.saving {
				m.saving = true
				return m, m.toggleStatusCmd(b)
			}
		case "x":
			if m.selected() != nil {
				m.confirm = new(bool)
				m.form = huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete %q?", m.selected().Title)).
						Affirmative("Delete").
						Negative("Keep").
						Value(m.confirm),
				)).WithShowHelp(false)
				m.state = budgetsStateConfirmDelete

				return m, m.form.Init()
			}
		case "q":
			if b := m.selected(); b != nil {
				return m, m.saveQuoteCmd(b)
			}
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			return m, m.loadCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(dateFilters)
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BudgetsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted || m.saving {
		return m, cmd
	}

	m.saving = true

	return m, m.saveCmd(m.binding)
}

func (m BudgetsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	b := m.selected()
	confirmed := m.confirm != nil && *m.confirm
	m.closeForm()

	if !confirmed || b == nil {
		return m, nil
	}

	return m, m.deleteCmd(b)
}

func (m *BudgetsModel) closeForm() {
	m.state = budgetsStateBrowse
	m.form = nil
	m.binding = nil
	m.confirm = nil
	m.table.Focus()
}

func (m BudgetsModel) selected() *budget.Budget {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	return m.list[idx]
}

func (m BudgetsModel) filter() budget.ListFilter {
	filter := budget.ListFilter{Status: statusFilters[m.statusFilterIdx]}

	if tf := dateFilters[m.dateFilterIdx]; tf != TimeframeAll {
		start, end := tf.Range(time.Now())
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return filter
}

func (m BudgetsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(r to retry, Esc to back)")
	}

	statusLabel := "All"
	if s := statusFilters[m.statusFilterIdx]; s != nil {
		statusLabel = s.Label()
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [d] Date: %s",
		activeStyle(statusLabel),
		activeStyle(dateFilters[m.dateFilterIdx].String()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(subtle).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil {
		heading := "New Budget"
		if m.state == budgetsStateConfirmDelete {
			heading = "Delete Budget"
		} else if m.binding != nil && m.binding.editing != nil {
			heading = "Edit Budget"
		}

		if m.saving {
			heading += " (saving...)"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(64).
			Render(heading + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BudgetsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.list))
	for _, b := range m.list {
		rows = append(rows, table.Row{
			FormatDate(b.Date),
			b.ClientName,
			b.Title,
			b.Status.Label(),
			FormatAmount(b.Total),
			FormatOptionalDate(b.DeliveryDate),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadBudgetsMsg struct {
	budgets []*budget.Budget
	err     error
}

type budgetFormDataMsg struct {
	editing     *budget.Budget
	clientNames []string
	products    []*product.Product
	err         error
}

type budgetSavedMsg struct {
	status string
	err    error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.budgets.List(ctx, filter)

		return loadBudgetsMsg{budgets: budgets, err: err}
	}
}

func (m BudgetsModel) formDataCmd(editing *budget.Budget) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		names, err := m.clients.Names(ctx)
		if err != nil {
			return budgetFormDataMsg{err: err}
		}

		products, err := m.products.List(ctx)
		if err != nil {
			return budgetFormDataMsg{err: err}
		}

		return budgetFormDataMsg{editing: editing, clientNames: names, products: products}
	}
}

func (m BudgetsModel) saveCmd(f *budgetForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if f.editing == nil {
			params, err := f.createParams()
			if err != nil {
				return budgetSavedMsg{err: err}
			}

			b, err := m.budgets.Create(ctx, params)
			if err != nil {
				return budgetSavedMsg{err: err}
			}

			return budgetSavedMsg{status: fmt.Sprintf("Created %q (%s).", b.Title, FormatAmount(b.Total))}
		}

		params, err := f.updateParams()
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		b, err := m.budgets.Update(ctx, f.editing.ID, params)
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: fmt.Sprintf("Saved %q (%s).", b.Title, FormatAmount(b.Total))}
	}
}

func (m BudgetsModel) toggleStatusCmd(b *budget.Budget) tea.Cmd {
	id, next := b.ID, b.Status.Toggle()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.budgets.SetStatus(ctx, id, next)
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: fmt.Sprintf("%q is now %s.", updated.Title, updated.Status.Label())}
	}
}

func (m BudgetsModel) deleteCmd(b *budget.Budget) tea.Cmd {
	id, title := b.ID, b.Title

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.budgets.Delete(ctx, id); err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: fmt.Sprintf("Deleted %q.", title)}
	}
}

func (m BudgetsModel) saveQuoteCmd(b *budget.Budget) tea.Cmd {
	id := b.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		path, err := m.quotes.Save(ctx, id, m.quoteDir)
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: "Quote saved to " + path}
	}
}
