package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/quotedesk/internal/app"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

type productRow struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Price string `json:"price" yaml:"price"`
}

type productList []productRow

func newProductList(products []*product.Product) productList {
	out := make(productList, len(products))
	for i, p := range products {
		out[i] = productRow{ID: p.ID.String(), Name: p.Name, Price: p.Price.Plain()}
	}

	return out
}

func (l productList) headers() []string {
	return []string{"Name", "Price"}
}

func (l productList) rows() [][]string {
	out := make([][]string, len(l))
	for i, p := range l {
		out[i] = []string{p.Name, p.Price}
	}

	return out
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import products from a CSV export or an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				created, err := a.Importer.Import(cmd.Context(), f)
				if len(created) > 0 {
					if rerr := render(cmd.OutOrStdout(), opts.output, newProductList(created)); rerr != nil {
						return rerr
					}
				}

				return err
			})
		},
	}
}
