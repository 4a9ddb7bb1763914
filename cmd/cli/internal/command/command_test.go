package command_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/quotedesk/cmd/cli/internal/command"
	"github.com/MrJamesThe3rd/quotedesk/internal/app"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/config"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/http/auth"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

func newConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Storage.Mode = config.StorageLocal
	cfg.Storage.CachePath = filepath.Join(dir, "cache.db")
	cfg.Export.Dir = filepath.Join(dir, "quotes")

	return cfg
}

// seed stores a budget through a short-lived App and returns it.
func seed(t *testing.T, cfg *config.Config, params budget.CreateParams) *budget.Budget {
	t.Helper()

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	require.NoError(t, err)

	defer func() { require.NoError(t, a.Close()) }()

	b, err := a.Budgets.Create(ctx, params)
	require.NoError(t, err)

	return b
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := command.NewRoot(cfg)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestBudgets_Formats(t *testing.T) {
	cfg := newConfig(t)
	seed(t, cfg, budget.CreateParams{
		Title:      "Festa",
		ClientName: "Ana",
		Items:      []budget.ItemParams{{ProductName: "Banner", Quantity: 2, UnitPrice: money.FromCents(8000)}},
	})

	out, err := run(t, cfg, "budgets", "-o", "json")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Festa", rows[0]["title"])
	assert.Equal(t, "R$ 160,00", rows[0]["total"])
	assert.Equal(t, "pending", rows[0]["status"])

	out, err = run(t, cfg, "budgets", "-o", "yaml", "--status", "finalizado")
	require.NoError(t, err)

	var none []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &none))
	assert.Empty(t, none)

	out, err = run(t, cfg, "budgets")
	require.NoError(t, err)
	assert.Contains(t, out, "Festa")
	assert.Contains(t, out, "R$ 160,00")

	_, err = run(t, cfg, "budgets", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestFinalizeAndQuote(t *testing.T) {
	cfg := newConfig(t)
	b := seed(t, cfg, budget.CreateParams{
		Title:      "Festa",
		ClientName: "Ana",
		Items:      []budget.ItemParams{{ProductName: "Banner", Quantity: 2, UnitPrice: money.FromCents(8000)}},
	})

	out, err := run(t, cfg, "finalize", b.ID.String()[:8])
	require.NoError(t, err)
	assert.Equal(t, "Festa is now Finalized\n", out)

	out, err = run(t, cfg, "quote", b.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "(2x) Banner")

	out, err = run(t, cfg, "quote", "--save", b.ID.String())
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, cfg.Export.Dir, filepath.Dir(path))
	assert.FileExists(t, path)

	_, err = run(t, cfg, "finalize", "ffffffff")
	assert.ErrorIs(t, err, budget.ErrNotFound)
}

func TestImport(t *testing.T) {
	cfg := newConfig(t)

	file := filepath.Join(t.TempDir(), "catalogo.csv")
	require.NoError(t, os.WriteFile(file, []byte("Nome;Preço\nBanner;R$ 80,00\nPlate;150.00\n"), 0o600))

	out, err := run(t, cfg, "import", "-o", "json", file)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Banner", rows[0]["name"])
	assert.Equal(t, "80.00", rows[0]["price"])

	_, err = run(t, cfg, "import", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	cfg := newConfig(t)
	b := seed(t, cfg, budget.CreateParams{
		ClientName: "Ana",
		Date:       new(mustDate(t, "10/03/2024")),
		Status:     budget.StatusFinalized,
		Items:      []budget.ItemParams{{ProductName: "Banner", Quantity: 2, UnitPrice: money.FromCents(8000)}},
	})
	require.Equal(t, budget.StatusFinalized, b.Status)

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)

	_, err = a.Expenses.Create(context.Background(), expense.CreateParams{
		Title:  "Tinta",
		Amount: money.FromCents(4000),
		Date:   new(mustDate(t, "12/03/2024")),
	})
	require.NoError(t, err)

	_, err = a.Invoices.Create(context.Background(), invoice.CreateParams{
		Title:  "Banner",
		Client: "Ana",
		Amount: money.FromCents(16000),
		Date:   new(mustDate(t, "15/03/2024")),
	})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	out, err := run(t, cfg, "report", "--from", "01/03/2024", "--to", "31/03/2024", "-o", "yaml")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "R$ 160,00", got["revenue"])
	assert.Equal(t, "R$ 40,00", got["expenses"])
	assert.Equal(t, "R$ 120,00", got["net_profit"])
	assert.Equal(t, "R$ 160,00", got["invoiced"])

	_, err = run(t, cfg, "report", "--from", "31/03/2024", "--to", "01/03/2024")
	assert.Error(t, err)

	_, err = run(t, cfg, "report", "--from", "31/02/2024")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	cfg := newConfig(t)

	_, err := run(t, cfg, "token")
	assert.Error(t, err)

	cfg.Auth.Secret = "s3cret"

	out, err := run(t, cfg, "token", "--subject", "ops")
	require.NoError(t, err)

	subject, err := auth.NewGuard("s3cret").Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := calendar.ParseStrict(s)
	require.NoError(t, err)

	return d
}
