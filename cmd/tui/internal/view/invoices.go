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
	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

type invoiceForm struct {
	editing *invoice.Invoice
	title   string
	client  string
	amount  string
	date    string
}

func (f *invoiceForm) build(clientNames []string) *huh.Form {
	var clientField huh.Field

	if len(clientNames) > 0 {
		if f.client == "" {
			f.client = clientNames[0]
		}

		clientField = huh.NewSelect[string]().
			Key("client").
			Title("Client").
			Options(huh.NewOptions(withCurrent(clientNames, f.client)...)...).
			Filtering(true).
			Value(&f.client)
	} else {
		clientField = huh.NewInput().
			Key("client").
			Title("Client").
			Value(&f.client).
			Validate(required("client"))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("title").Title("Title").Value(&f.title).Validate(required("title")),
			clientField,
			huh.NewInput().Key("amount").Title("Amount").Placeholder("R$ 120,00").Value(&f.amount).Validate(validAmount),
			huh.NewInput().Key("date").Title("Date").Placeholder("DD/MM/YYYY").Value(&f.date).Validate(validDate(false)),
		),
	).WithWidth(45).WithShowHelp(false)
}

type InvoicesModel struct {
	CommonModel
	invoices *invoice.Service
	clients  *client.Service

	table   table.Model
	list    []*invoice.Invoice
	form    *huh.Form
	binding *invoiceForm

	dateFilterIdx int

	loading bool
	saving  bool
	err     error
	status  string
}

func NewInvoicesModel(invoices *invoice.Service, clients *client.Service) InvoicesModel {
	return InvoicesModel{
		invoices: invoices,
		clients:  clients,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Title", Width: 30},
			{Title: "Client", Width: 20},
			{Title: "Amount", Width: 16},
		}),
		loading: true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	if m.form != nil {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | d: date filter | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.list = msg.invoices
			m.refreshTable()
		}

		return m, nil

	case invoiceFormDataMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.binding = msg.form
		m.form = msg.form.build(msg.clientNames)
		m.table.Blur()

		return m, m.form.Init()

	case ChangedMsg:
		if msg.Affects(events.InvoicesChanged) {
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
			return m, m.formDataCmd(nil)
		case "e":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.list) {
				return m, m.formDataCmd(m.list[idx])
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

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m *InvoicesModel) closeForm() {
	m.form = nil
	m.binding = nil
	m.table.Focus()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	var total money.Amount
	for _, inv := range m.list {
		total = total.Add(inv.Amount)
	}

	header := fmt.Sprintf("[d] Date: %s | Invoiced: %s",
		activeStyle(dateFilters[m.dateFilterIdx].String()), activeStyle(FormatAmount(total)))

	status := header
	if m.status != "" {
		status = m.status + "\n" + header
	}

	return catalogView(m.table, m.form, status, "Invoice")
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, len(m.list))
	for i, inv := range m.list {
		rows[i] = table.Row{FormatDate(inv.Date), inv.Title, inv.ClientName, FormatAmount(inv.Amount)}
	}

	m.table.SetRows(rows)
}

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

type invoiceFormDataMsg struct {
	form        *invoiceForm
	clientNames []string
	err         error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	filter := invoice.ListFilter{}

	if tf := dateFilters[m.dateFilterIdx]; tf != TimeframeAll {
		start, end := tf.Range(time.Now())
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invoices.List(ctx, filter)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

func (m InvoicesModel) formDataCmd(editing *invoice.Invoice) tea.Cmd {
	f := &invoiceForm{date: FormatDate(calendar.Today(time.Now()))}
	if editing != nil {
		f.editing = editing
		f.title = editing.Title
		f.client = editing.ClientName
		f.amount = money.Format(editing.Amount)
		f.date = FormatDate(editing.Date)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		names, err := m.clients.Names(ctx)

		return invoiceFormDataMsg{form: f, clientNames: names, err: err}
	}
}

func (m InvoicesModel) saveCmd(f *invoiceForm) tea.Cmd {
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
			inv, err := m.invoices.Update(ctx, f.editing.ID, invoice.UpdateParams{
				Title:  &f.title,
				Client: &f.client,
				Amount: &amount,
				Date:   &date,
			})
			if err != nil {
				return catalogSavedMsg{err: err}
			}

			return catalogSavedMsg{status: fmt.Sprintf("Updated %s (%s).", inv.Title, FormatAmount(inv.Amount))}
		}

		inv, err := m.invoices.Create(ctx, invoice.CreateParams{Title: f.title, Client: f.client, Amount: amount, Date: &date})
		if err != nil {
			return catalogSavedMsg{err: err}
		}

		return catalogSavedMsg{status: fmt.Sprintf("Invoiced %s to %s (%s).", inv.Title, inv.ClientName, FormatAmount(inv.Amount))}
	}
}

func (m InvoicesModel) deleteCmd(inv *invoice.Invoice) tea.Cmd {
	id, title := inv.ID, inv.Title

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoices.Delete(ctx, id); err != nil {
			return catalogSavedMsg{err: err}
		}

		return catalogSavedMsg{status: fmt.Sprintf("Deleted %s.", title)}
	}
}
