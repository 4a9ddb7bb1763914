package importer

// Profile describes the column layout of a product spreadsheet.
type Profile struct {
	Name     string
	NameCol  string
	PriceCol string
}

// profiles is tried in order during header detection. Headers are compared
// ignoring case and accents.
var profiles = []Profile{
	{Name: "catálogo", NameCol: "Nome", PriceCol: "Preço"},
	{Name: "tabela de preços", NameCol: "Produto", PriceCol: "Valor"},
	{Name: "tabela de preços", NameCol: "Produto", PriceCol: "Preço"},
}
