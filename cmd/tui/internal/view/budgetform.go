package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

// budgetForm holds the bindings of the create/edit form. It is kept behind a
// pointer so the huh fields stay bound when the owning model is copied.
type budgetForm struct {
	editing *budget.Budget

	title    string
	client   string
	date     string
	delivery string
	status   budget.Status
	items    string

	lookup PriceLookup
}

func newBudgetForm(editing *budget.Budget, today string, products []*product.Product) *budgetForm {
	f := &budgetForm{
		editing: editing,
		date:    today,
		status:  budget.StatusPending,
		lookup:  catalogLookup(products),
	}

	if editing != nil {
		f.title = editing.Title
		f.client = editing.ClientName
		f.date = FormatDate(editing.Date)
		f.status = editing.Status
		f.items = FormatItemLines(editing.Items)

		if editing.DeliveryDate != nil {
			f.delivery = FormatDate(*editing.DeliveryDate)
		}
	}

	return f
}

func catalogLookup(products []*product.Product) PriceLookup {
	return func(name string) (money.Amount, bool) {
		for _, p := range products {
			if strings.EqualFold(strings.TrimSpace(p.Name), name) {
				return p.Price, true
			}
		}

		return 0, false
	}
}

func (f *budgetForm) build(clientNames []string) *huh.Form {
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

	fields := []huh.Field{
		clientField,
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Generated when empty").
			Value(&f.title),
		huh.NewInput().
			Key("date").
			Title("Date").
			Placeholder("DD/MM/YYYY").
			Value(&f.date).
			Validate(validDate(false)),
		huh.NewInput().
			Key("delivery").
			Title("Delivery date (optional)").
			Placeholder("DD/MM/YYYY").
			Value(&f.delivery).
			Validate(validDate(true)),
	}

	if f.editing == nil {
		fields = append(fields, huh.NewSelect[budget.Status]().
			Key("status").
			Title("Status").
			Options(
				huh.NewOption(budget.StatusPending.Label(), budget.StatusPending),
				huh.NewOption(budget.StatusFinalized.Label(), budget.StatusFinalized),
			).
			Value(&f.status))
	}

	fields = append(fields, huh.NewText().
		Key("items").
		Title("Items").
		Description("One per line: 2x Banner @ R$ 80,00 (price optional for catalog products)").
		Lines(6).
		Value(&f.items).
		Validate(func(s string) error {
			_, err := ParseItemLines(s, f.lookup)
			return err
		}))

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(60).WithShowHelp(false)
}

func (f *budgetForm) createParams() (budget.CreateParams, error) {
	items, err := ParseItemLines(f.items, f.lookup)
	if err != nil {
		return budget.CreateParams{}, err
	}

	date, err := calendar.ParseStrict(f.date)
	if err != nil {
		return budget.CreateParams{}, err
	}

	params := budget.CreateParams{
		Title:      f.title,
		ClientName: f.client,
		Date:       &date,
		Status:     f.status,
		Items:      items,
	}

	if strings.TrimSpace(f.delivery) != "" {
		d, err := calendar.ParseStrict(f.delivery)
		if err != nil {
			return budget.CreateParams{}, err
		}

		params.DeliveryDate = &d
	}

	return params, nil
}

func (f *budgetForm) updateParams() (budget.UpdateParams, error) {
	created, err := f.createParams()
	if err != nil {
		return budget.UpdateParams{}, err
	}

	return budget.UpdateParams{
		Title:         &created.Title,
		ClientName:    &created.ClientName,
		Date:          created.Date,
		DeliveryDate:  created.DeliveryDate,
		ClearDelivery: created.DeliveryDate == nil,
		Items:         created.Items,
	}, nil
}

// withCurrent keeps a name no longer in the catalog selectable.
func withCurrent(names []string, current string) []string {
	if current == "" {
		return names
	}

	for _, n := range names {
		if n == current {
			return names
		}
	}

	return append([]string{current}, names...)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func validDate(optional bool) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			if optional {
				return nil
			}

			return errors.New("date cannot be empty")
		}

		if _, err := calendar.ParseStrict(s); err != nil {
			return errors.New("use DD/MM/YYYY")
		}

		return nil
	}
}

// validSpent accepts either sign, as in "- R$ 250,00".
func validSpent(s string) error {
	a, err := money.ParseString(s)
	if err != nil {
		return errors.New("use a value like 80,00 or - R$ 80,00")
	}

	if a == 0 {
		return errors.New("amount must be greater than zero")
	}

	return nil
}

func validAmount(s string) error {
	a, err := money.ParseString(s)
	if err != nil {
		return errors.New("use a value like 80,00 or R$ 80,00")
	}

	if a.IsNegative() {
		return errors.New("amount cannot be negative")
	}

	return nil
}
