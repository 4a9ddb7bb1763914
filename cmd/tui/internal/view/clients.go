package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
)

type clientForm struct {
	editing *client.Client
	name    string
	phone   string
	address string
}

type ClientsModel struct {
	CommonModel
	clients *client.Service

	table   table.Model
	list    []*client.Client
	form    *huh.Form
	binding *clientForm

	loading bool
	saving  bool
	err     error
	status  string
}

func NewClientsModel(svc *client.Service) ClientsModel {
	return ClientsModel{
		clients: svc,
		table: newTable([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Phone", Width: 18},
			{Title: "Address", Width: 40},
		}),
		loading: true,
	}
}

func (m ClientsModel) Title() string { return "Clients" }

func (m ClientsModel) ShortHelp() string {
	if m.form != nil {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.list = msg.clients
			m.refreshTable()
		}

		return m, nil

	case ChangedMsg:
		if msg.Affects(events.ClientsChanged) {
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
		case "n":
			return m.openForm(nil)
		case "e":
			if c := m.selected(); c != nil {
				return m.openForm(c)
			}
		case "x":
			if c := m.selected(); c != nil && !m.saving {
				m.saving = true
				return m, m.deleteCmd(c)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) openForm(editing *client.Client) (tea.Model, tea.Cmd) {
	f := &clientForm{editing: editing}
	if editing != nil {
		f.name, f.phone, f.address = editing.Name, editing.Phone, editing.Address
	}

	m.binding = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&f.name).Validate(required("name")),
			huh.NewInput().Key("phone").Title("Phone").Value(&f.phone),
			huh.NewInput().Key("address").Title("Address").Value(&f.address),
		),
	).WithWidth(45).WithShowHelp(false)
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m *ClientsModel) closeForm() {
	m.form = nil
	m.binding = nil
	m.table.Focus()
}

func (m ClientsModel) selected() *client.Client {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	return m.list[idx]
}

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	return catalogView(m.table, m.form, m.status, "Client")
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, len(m.list))
	for i, c := range m.list {
		rows[i] = table.Row{c.Name, c.Phone, c.Address}
	}

	m.table.SetRows(rows)
}

type loadClientsMsg struct {
	clients []*client.Client
	err     error
}

// catalogSavedMsg reports the outcome of a save or delete on any catalog screen.
type catalogSavedMsg struct {
	status string
	err    error
}

func (m ClientsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.clients.List(ctx)

		return loadClientsMsg{clients: clients, err: err}
	}
}

func (m ClientsModel) saveCmd(f *clientForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if f.editing == nil {
			c, err := m.clients.Create(ctx, client.CreateParams{Name: f.name, Phone: f.phone, Address: f.address})
			if err != nil {
				return catalogSavedMsg{err: err}
			}

			return catalogSavedMsg{status: fmt.Sprintf("Added %s.", c.Name)}
		}

		c, err := m.clients.Update(ctx, f.editing.ID, client.UpdateParams{Name: &f.name, Phone: &f.phone, Address: &f.address})
		if err != nil {
			return catalogSavedMsg{err: err}
		}

		return catalogSavedMsg{status: fmt.Sprintf("Saved %s.", c.Name)}
	}
}

func (m ClientsModel) deleteCmd(c *client.Client) tea.Cmd {
	id, name := c.ID, c.Name

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.clients.Delete(ctx, id); err != nil {
			return catalogSavedMsg{err: err}
		}

		return catalogSavedMsg{status: fmt.Sprintf("Deleted %s.", name)}
	}
}

// catalogView lays out a catalog table with an optional side form.
func catalogView(t table.Model, form *huh.Form, status, entity string) string {
	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(subtle).
		Render(t.View())

	if form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(entity + "\n\n" + form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if status != "" {
		content = faint(status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
