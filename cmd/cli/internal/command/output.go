package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// tabular is implemented by every value the commands print.
type tabular interface {
	headers() []string
	rows() [][]string
}

// render writes v to w in the requested format.
func render(w io.Writer, format string, v tabular) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	case formatTable, "":
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(v.headers()...).
			Rows(v.rows()...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}

				return cellStyle
			})

		_, err := fmt.Fprintln(w, t.Render())

		return err
	}

	return fmt.Errorf("unknown output format %q: want %s, %s or %s", format, formatTable, formatJSON, formatYAML)
}
