package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/app"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/config"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

func TestNew_LocalStorage(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.Storage.Mode = config.StorageLocal
	cfg.Storage.CachePath = filepath.Join(t.TempDir(), "nested", "cache.db")

	a, err := app.New(ctx, cfg)
	require.NoError(t, err)

	b, err := a.Budgets.Create(ctx, budget.CreateParams{
		ClientName: "Ana",
		Items:      []budget.ItemParams{{ProductName: "Banner", Quantity: 2, UnitPrice: money.FromCents(8000)}},
	})
	require.NoError(t, err)

	summary, err := a.Dashboard.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.PendingBudgets)

	require.NoError(t, a.Close())

	reopened, err := app.New(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Budgets.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "R$ 160,00", got.Total.String())
}
