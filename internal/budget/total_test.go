package budget_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

func TestTotal(t *testing.T) {
	type testCase struct {
		name  string
		items []budget.LineItem
		want  money.Amount
	}

	tests := []testCase{
		{
			name: "Empty",
			want: 0,
		},
		{
			name: "SingleItem",
			items: []budget.LineItem{
				{ProductName: "Bolo de cenoura", Quantity: 2, UnitPrice: 4500},
			},
			want: 9000,
		},
		{
			name: "SeveralItems",
			items: []budget.LineItem{
				{ProductName: "Bolo de cenoura", Quantity: 2, UnitPrice: 15000},
				{ProductName: "Docinhos", Quantity: 100, UnitPrice: 100},
				{ProductName: "Topo de bolo", Quantity: 1, UnitPrice: 1999},
			},
			want: 41999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, budget.Total(tt.items))
		})
	}
}

func TestNormalizeItems(t *testing.T) {
	type testCase struct {
		name      string
		params    []budget.ItemParams
		wantNames []string
		wantField string
	}

	tests := []testCase{
		{
			name: "SkipsItemsWithoutProduct",
			params: []budget.ItemParams{
				{ProductName: "Torta", Quantity: 1, UnitPrice: 8000},
				{ProductName: "  ", Quantity: 3, UnitPrice: 100},
				{ProductName: "", Quantity: 0, UnitPrice: -1},
			},
			wantNames: []string{"Torta"},
		},
		{
			name:      "NoItems",
			wantNames: []string{},
		},
		{
			name: "ZeroQuantity",
			params: []budget.ItemParams{
				{ProductName: "Torta", Quantity: 1, UnitPrice: 8000},
				{ProductName: "Brigadeiro", Quantity: 0, UnitPrice: 150},
			},
			wantField: "items[1].quantity",
		},
		{
			name: "NegativePrice",
			params: []budget.ItemParams{
				{ProductName: "Brigadeiro", Quantity: 10, UnitPrice: -150},
			},
			wantField: "items[0].unit_price",
		},
		{
			name: "SubtotalOverflow",
			params: []budget.ItemParams{
				{ProductName: "Banner", Quantity: 2, UnitPrice: 8000},
				{ProductName: "Outdoor", Quantity: 3, UnitPrice: math.MaxInt64 / 2},
			},
			wantField: "items[1].quantity",
		},
		{
			name: "TotalOverflow",
			params: []budget.ItemParams{
				{ProductName: "Outdoor", Quantity: 1, UnitPrice: math.MaxInt64 - 100},
				{ProductName: "Banner", Quantity: 2, UnitPrice: 8000},
			},
			wantField: "items",
		},
		{
			name: "LargestTotal",
			params: []budget.ItemParams{
				{ProductName: "Outdoor", Quantity: 1, UnitPrice: math.MaxInt64 - 16000},
				{ProductName: "Banner", Quantity: 2, UnitPrice: 8000},
			},
			wantNames: []string{"Outdoor", "Banner"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := budget.NormalizeItems(tt.params)

			if tt.wantField != "" {
				require.Error(t, err)

				vErr, ok := validation.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, vErr.Field)

				return
			}

			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, item := range got {
				assert.NotEmpty(t, item.ID)
				names = append(names, item.ProductName)
			}

			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestBudget_SetItems(t *testing.T) {
	b := &budget.Budget{Total: 123}
	assert.False(t, b.Consistent())

	b.SetItems([]budget.LineItem{{ProductName: "Pão de mel", Quantity: 12, UnitPrice: 350}})

	assert.Equal(t, money.Amount(4200), b.Total)
	assert.True(t, b.Consistent())
}

func TestBudget_Reconcile(t *testing.T) {
	b := &budget.Budget{
		Total: 38000,
		Items: []budget.LineItem{
			{ProductName: "Banner", Quantity: 2, UnitPrice: 8000},
			{ProductName: "Plate", Quantity: 1, UnitPrice: 15000},
		},
	}

	stored, changed := b.Reconcile()
	assert.True(t, changed)
	assert.Equal(t, money.Amount(38000), stored)
	assert.Equal(t, money.Amount(31000), b.Total)
	assert.True(t, b.Consistent())

	_, changed = b.Reconcile()
	assert.False(t, changed)
}

func TestParseStatus(t *testing.T) {
	tests := map[string]budget.Status{
		"pending":     budget.StatusPending,
		"Pendente":    budget.StatusPending,
		"RASCUNHO":    budget.StatusPending,
		"finalized":   budget.StatusFinalized,
		" Finalizado": budget.StatusFinalized,
	}

	for in, want := range tests {
		got, err := budget.ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := budget.ParseStatus("cancelled")
	require.Error(t, err)
}

func TestStatus_Toggle(t *testing.T) {
	assert.Equal(t, budget.StatusFinalized, budget.StatusPending.Toggle())
	assert.Equal(t, budget.StatusPending, budget.StatusFinalized.Toggle())
}
