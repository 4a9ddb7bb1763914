package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

type productForm struct {
	editing *product.Product
	name    string
	price   string
}

// ImportRequestMsg asks the shell to open the spreadsheet import screen.
type ImportRequestMsg struct{}

type ProductsModel struct {
	CommonModel
	products *product.Service

	table   table.Model
	list    []*product.Product
	form    *huh.Form
	binding *productForm

	loading bool
	saving  bool
	err     error
	status  string
}

func NewProductsModel(svc *product.Service) ProductsModel {
	return ProductsModel{
		products: svc,
		table: newTable([]table.Column{
			{Title: "Name", Width: 40},
			{Title: "Price", Width: 16},
		}),
		loading: true,
	}
}

func (m ProductsModel) Title() string { return "Products" }

func (m ProductsModel) ShortHelp() string {
	if m.form != nil {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | i: import sheet | r: refresh"
}

func (m ProductsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProductsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.list = msg.products
			m.refreshTable()
		}

		return m, nil

	case ChangedMsg:
		if msg.Affects(events.ProductsChanged) {
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
		case "i":
			return m, func() tea.Msg { return ImportRequestMsg{} }
		case "n":
			return m.openForm(nil)
		case "e":
			if p := m.selected(); p != nil {
				return m.openForm(p)
			}
		case "x":
			if p := m.selected(); p != nil && !m.saving {
				m.saving = true
				return m, m.deleteCmd(p)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProductsModel) openForm(editing *product.Product) (tea.Model, tea.Cmd) {
	f := &productForm{editing: editing}
	if editing != nil {
		f.name, f.price = editing.Name, FormatAmount(editing.Price)
	}

	m.binding = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&f.name).Validate(required("name")),
			huh.NewInput().Key("price").Title("Price").Placeholder("R$ 80,00").Value(&f.price).Validate(validAmount),
		),
	).WithWidth(45).WithShowHelp(false)
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m *ProductsModel) closeForm() {
	m.form = nil
	m.binding = nil
	m.table.Focus()
}

func (m ProductsModel) selected() *product.Product {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	return m.list[idx]
}

func (m ProductsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading products...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	return catalogView(m.table, m.form, m.status, "Product")
}

func (m *ProductsModel) refreshTable() {
	rows := make([]table.Row, len(m.list))
	for i, p := range m.list {
		rows[i] = table.Row{p.Name, FormatAmount(p.Price)}
	}

	m.table.SetRows(rows)
}

type loadProductsMsg struct {
	products []*product.Product
	err      error
}

func (m ProductsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.products.List(ctx)

		return loadProductsMsg{products: products, err: err}
	}
}

func (m ProductsModel) saveCmd(f *productForm) tea.Cmd {
	return func() tea.Msg {
		price, err := money.ParseString(f.price)
		if err != nil {
			return catalogSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if f.editing == nil {
			p, err := m.products.Create(ctx, product.CreateParams{Name: f.name, Price: price})
			if err != nil {
				return catalogSavedMsg{err: err}
			}

			return catalogSavedMsg{status: fmt.Sprintf("Added %s at %s.", p.Name, FormatAmount(p.Price))}
		}

		p, err := m.products.Update(ctx, f.editing.ID, product.UpdateParams{Name: &f.name, Price: &price})
		if err != nil {
			return catalogSavedMsg{err: err}
		}

		return catalogSavedMsg{status: fmt.Sprintf("Saved %s.", p.Name)}
	}
}

func (m ProductsModel) deleteCmd(p *product.Product) tea.Cmd {
	id, name := p.ID, p.Name

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.products.Delete(ctx, id); err != nil {
			return catalogSavedMsg{err: err}
		}

		return catalogSavedMsg{status: fmt.Sprintf("Deleted %s.", name)}
	}
}
