package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/quotedesk/internal/importer"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name        string
		input       string
		wantProfile string
		want        []product.CreateParams
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "Catalogo",
			input: "Nome;Preço\n" +
				"Banner;R$ 80,00\n" +
				"Plate;150.00\n" +
				";\n" +
				"Cartão de visita;1.250,50\n",
			wantProfile: "catálogo",
			want: []product.CreateParams{
				{Name: "Banner", Price: 8000},
				{Name: "Plate", Price: 15000},
				{Name: "Cartão de visita", Price: 125050},
			},
		},
		{
			name: "TabelaWithPreamble",
			input: "Tabela de preços 2024\n" +
				"\n" +
				"PRODUTO,VALOR,Observação\n" +
				"Sticker,25.00,vinil\n",
			wantProfile: "tabela de preços",
			want: []product.CreateParams{
				{Name: "Sticker", Price: 2500},
			},
		},
		{
			name:        "HeaderWithoutAccents",
			input:       "nome\tpreco\nBolo\t45,00\n",
			wantProfile: "catálogo",
			want: []product.CreateParams{
				{Name: "Bolo", Price: 4500},
			},
		},
		{
			name:    "NoHeader",
			input:   "Descrição;Montante\nx;1\n",
			wantErr: true,
		},
		{
			name:    "BadPrice",
			input:   "Nome;Preço\nBanner;oitenta\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := importer.Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantProfile, sheet.Profile.Name)
			assert.Equal(t, tt.want, sheet.Products)
		})
	}
}

func TestParse_BadPriceReportsRow(t *testing.T) {
	_, err := importer.Parse(strings.NewReader("Nome;Preço\nBanner;10,00\nPlate;abc\n"))
	require.Error(t, err)

	vErr, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "row 3", vErr.Field)
}

func TestParse_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().String("Nome;Preço\nPão de mel;3,50\n")
	require.NoError(t, err)

	sheet, err := importer.Parse(bytes.NewReader([]byte(raw)))
	require.NoError(t, err)
	require.Len(t, sheet.Products, 1)
	assert.Equal(t, "Pão de mel", sheet.Products[0].Name)
	assert.Equal(t, money.Amount(350), sheet.Products[0].Price)
}

type recordingImporter struct {
	got []product.CreateParams
}

func (r *recordingImporter) Import(_ context.Context, params []product.CreateParams) ([]*product.Product, error) {
	r.got = params

	out := make([]*product.Product, len(params))
	for i, p := range params {
		out[i] = &product.Product{Name: p.Name, Price: p.Price}
	}

	return out, nil
}

func TestService_Import(t *testing.T) {
	rec := &recordingImporter{}
	svc := importer.NewService(rec)

	got, err := svc.Import(context.Background(), strings.NewReader("Produto;Valor\nBanner;80\nPlate;150\n"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, rec.got, 2)

	_, err = svc.Import(context.Background(), strings.NewReader("nothing here"))
	assert.ErrorIs(t, err, importer.ErrNoHeader)
}

func TestParse_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Catálogo 2024"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Produto", "Valor"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"Banner", 80.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A5", &[]any{"Plate", "R$ 1.250,00"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	parsed, err := importer.Parse(buf)
	require.NoError(t, err)
	assert.Equal(t, "tabela de preços", parsed.Profile.Name)
	assert.Equal(t, []product.CreateParams{
		{Name: "Banner", Price: 8050},
		{Name: "Plate", Price: 125000},
	}, parsed.Products)
}
