package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

type expenseForm struct {
	editing *expense.Expense
	title   string
	amount  string
	date    string
}

type ExpensesModel struct {
	CommonModel
	expenses *expense.Service

	table   table.Model
	list    []*expense.Expense
	form    *huh.Form
	binding *expenseForm

	dateFilterIdx int

	loading bool
	saving  bool
	err     error
	status  string
}

func NewExpensesModel(svc *expense.Service) ExpensesModel {
	return ExpensesModel{
		expenses: svc,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Title", Width: 40},
			{Title: "Amount", Width: 16},
		}),
		loading: true,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	if m.form != nil {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | d: date filter | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.list = msg.expenses
			m.refreshTable()
		}

		return m, nil

	case ChangedMsg:
		if msg.Affects(events.ExpensesChanged) {
			return m, m.loadCmd()
		}

		return m, nil

	case catalogSavedMsg:
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

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(dateFilters)
			return m, m.loadCmd()
		case "n":
			return m.openForm(nil)
		case "e":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.list) {
				return m.openForm(m.list[idx])
			}
		case "x":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.list) && !m.saving {
				m.saving = true
				return m, m.deleteCmd(m.list[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) openForm(editing *expense.Expense) (tea.Model, tea.Cmd) {
	f := &expenseForm{date: FormatDate(calendar.Today(time.Now()))}
	if editing != nil {
		f.editing = editing
		f.title = editing.Title
		f.amount = money.Format(editing.Amount)
		f.date = FormatDate(editing.Date)
	}

	m.binding = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("title").Title("Title").Value(&f.title).Validate(required("title")),
			huh.NewInput().Key("amount").Title("Amount").Placeholder("R$ 40,00").Value(&f.amount).Validate(validSpent),
			huh.NewInput().Key("date").Title("Date").Placeholder("DD/MM/YYYY").Value(&f.date).Validate(validDate(false)),
		),
	).WithWidth(45).WithShowHelp(false)
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m *ExpensesModel) closeForm() {
	m.form = nil
	m.binding = nil
	m.table.Focus()
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	var total money.Amount
	for _, e := range m.list {
		total = total.Add(e.Amount)
	}

	header := fmt.Sprintf("[d] Date: %s | Total: %s",
		activeStyle(dateFilters[m.dateFilterIdx].String()), activeStyle(FormatAmount(total)))

	status := header
	if m.status != "" {
		status = m.status + "\n" + header
	}

	return catalogView(m.table, m.form, status, "Expense")
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, len(m.list))
	for i, e := range m.list {
		rows[i] = table.Row{FormatDate(e.Date), e.Title, FormatAmount(e.Amount)}
	}

	m.table.SetRows(rows)
}

type loadExpensesMsg struct {
	expenses []*expense.Expense
	err      error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	filter := expense.ListFilter{}

	if tf := dateFilters[m.dateFilterIdx]; tf != TimeframeAll {
		start, end := tf.Range(time.Now())
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.expenses.List(ctx, filter)

		return loadExpensesMsg{expenses: expenses, err: err}
	}
}

func (m ExpensesModel) saveCmd(f *expenseForm) tea.Cmd {
	return func() tea.Msg {
		amount, err := money.ParseString(f.amount)
		if err != nil {
			return catalogSavedMsg{err: err}
		}

		date, err := calendar.ParseStrict(strings.TrimSpace(f.date))
		if err != nil {
			return catalogSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if f.editing != nil {
			e, err := m.expenses.Update(ctx, f.editing.ID, expense.UpdateParams{Title: &f.title, Amount: &amount, Date: &date})
			if err != nil {
				return catalogSavedMsg{err: err}
			}

			return catalogSavedMsg{status: fmt.Sprintf("Updated %s (%s).", e.Title, FormatAmount(e.Amount))}
		}

		e, err := m.expenses.Create(ctx, expense.CreateParams{Title: f.title, Amount: amount, Date: &date})
		if err != nil {
			return catalogSavedMsg{err: err}
		}

		return catalogSavedMsg{status: fmt.Sprintf("Recorded %s (%s).", e.Title, FormatAmount(e.Amount))}
	}
}

func (m ExpensesModel) deleteCmd(e *expense.Expense) tea.Cmd {
	id, title := e.ID, e.Title

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.expenses.Delete(ctx, id); err != nil {
			return catalogSavedMsg{err: err}
		}

		return catalogSavedMsg{status: fmt.Sprintf("Deleted %s.", title)}
	}
}
