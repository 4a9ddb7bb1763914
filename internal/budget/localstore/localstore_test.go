package localstore_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	auditstore "github.com/MrJamesThe3rd/quotedesk/internal/audit/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

type fixture struct {
	svc      *budget.Service
	activity *audit.Service
	bus      *events.Bus
	notified *atomic.Int32
}

func setup(t *testing.T) fixture {
	t.Helper()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = cache.Close() })

	bus := events.NewBus()
	activity := audit.NewService(auditstore.New(cache))

	var notified atomic.Int32

	bus.Subscribe(events.BudgetsChanged, func() { notified.Add(1) })

	return fixture{
		svc:      budget.NewService(localstore.New(cache), activity, bus),
		activity: activity,
		bus:      bus,
		notified: &notified,
	}
}

func TestScenario_CreateEditFinalize(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, budget.CreateParams{
		ClientName: "Ana",
		Date:       new(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		Items: []budget.ItemParams{
			{ProductName: "Bolo de morango", Quantity: 1, UnitPrice: money.MustParse("R$ 150,00")},
			{ProductName: "Coxinha", Quantity: 50, UnitPrice: money.MustParse("1,20")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "R$ 210,00", created.Total.String())

	updated, err := f.svc.Update(ctx, created.ID, budget.UpdateParams{
		Items: []budget.ItemParams{
			{ProductName: "Bolo de morango", Quantity: 2, UnitPrice: 15000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, money.Amount(30000), updated.Total)

	_, err = f.svc.SetStatus(ctx, created.ID, budget.StatusFinalized)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusFinalized, got.Status)
	assert.Equal(t, money.Amount(30000), got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Consistent())
	assert.Equal(t, "2024-03-15", got.Date.Format(time.DateOnly))

	f.bus.Wait()
	assert.Equal(t, int32(3), f.notified.Load())

	entries, err := f.activity.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "status changed from Pending to Finalized", entries[0].Detail)
	assert.Equal(t, audit.ActionCreate, entries[2].Action)
}

func TestScenario_DeleteRemovesItems(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	kept, err := f.svc.Create(ctx, budget.CreateParams{
		ClientName: "Ana",
		Items:      []budget.ItemParams{{ProductName: "Bolo", Quantity: 1, UnitPrice: 12000}},
	})
	require.NoError(t, err)

	created, err := f.svc.Create(ctx, budget.CreateParams{
		Title:      "Torta do Bruno",
		ClientName: "Bruno",
		Items:      []budget.ItemParams{{ProductName: "Torta", Quantity: 1, UnitPrice: 9000}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID))

	_, err = f.svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, budget.ErrNotFound)

	listed, err := f.svc.List(ctx, budget.ListFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, kept.ID, listed[0].ID)

	err = f.svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, budget.ErrNotFound)

	f.bus.Wait()
	assert.Equal(t, int32(3), f.notified.Load())

	entries, err := f.activity.Recent(ctx, 10)
	require.NoError(t, err)

	var deletes []*audit.Entry

	for _, e := range entries {
		if e.Action == audit.ActionDelete {
			deletes = append(deletes, e)
		}
	}

	require.Len(t, deletes, 1)
	assert.Equal(t, "Torta do Bruno", deletes[0].EntityTitle)
}

func TestScenario_FinalizeAndReopen(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, budget.CreateParams{
		ClientName: "Carla",
		Items:      []budget.ItemParams{{ProductName: "Banner", Quantity: 2, UnitPrice: 8000}},
	})
	require.NoError(t, err)

	f.bus.Wait()
	require.Equal(t, int32(1), f.notified.Load())

	_, err = f.svc.SetStatus(ctx, created.ID, created.Status.Toggle())
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, budget.StatusFinalized, got.Status)

	_, err = f.svc.SetStatus(ctx, created.ID, got.Status.Toggle())
	require.NoError(t, err)

	got, err = f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, budget.StatusPending, got.Status)
	assert.Equal(t, created.Total, got.Total)

	f.bus.Wait()
	assert.Equal(t, int32(3), f.notified.Load())

	entries, err := f.activity.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "status changed from Finalized to Pending", entries[0].Detail)
	assert.Equal(t, "status changed from Pending to Finalized", entries[1].Detail)
	assert.Equal(t, audit.ActionCreate, entries[2].Action)
}

func TestScenario_InvalidEditLeavesBudgetUntouched(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, budget.CreateParams{
		ClientName: "Carla",
		Items:      []budget.ItemParams{{ProductName: "Bolo", Quantity: 1, UnitPrice: 10000}},
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, budget.UpdateParams{
		Items: []budget.ItemParams{{ProductName: "Bolo", Quantity: -1, UnitPrice: 10000}},
	})
	require.Error(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(10000), got.Total)
	assert.Len(t, got.Items, 1)

	f.bus.Wait()
	assert.Equal(t, int32(1), f.notified.Load())
}

func TestStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	for _, p := range []budget.CreateParams{
		{ClientName: "Ana Souza", Date: new(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))},
		{ClientName: "Bruno", Date: new(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)), Status: budget.StatusFinalized},
		{ClientName: "ana lima", Date: new(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))},
	} {
		_, err := f.svc.Create(ctx, p)
		require.NoError(t, err)
	}

	all, err := f.svc.List(ctx, budget.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	finalized := budget.StatusFinalized
	got, err := f.svc.List(ctx, budget.ListFilter{Status: &finalized})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bruno", got[0].ClientName)

	got, err = f.svc.List(ctx, budget.ListFilter{ClientName: "ANA"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.svc.List(ctx, budget.ListFilter{
		StartDate: new(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   new(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bruno", got[0].ClientName)
}

func TestStore_LegacyDisplayDates(t *testing.T) {
	ctx := context.Background()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	raw := `[{"id":"6f1c2a3e-8b4d-4c7a-9e2f-1a2b3c4d5e6f","title":"Festa","client_name":"Ana",` +
		`"date":"5/3/2024","delivery_date":"10/03/2024","status":"pending","total":1500,` +
		`"items":[{"id":"0b6b3f5e-1c2d-4e3f-8a9b-0c1d2e3f4a5b","product_name":"Bolo","quantity":1,"unit_price":1500}],` +
		`"created_at":"2024-03-05T10:00:00Z"}]`
	require.NoError(t, cache.Set(ctx, localstore.Key, []byte(raw)))

	got, err := localstore.New(cache).ListBudgets(ctx, budget.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-05", got[0].Date.Format(time.DateOnly))
	require.NotNil(t, got[0].DeliveryDate)
	assert.Equal(t, "2024-03-10", got[0].DeliveryDate.Format(time.DateOnly))
	assert.True(t, got[0].Consistent())
}

func TestStore_StaleTotalIsRecomputed(t *testing.T) {
	ctx := context.Background()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	raw := `[{"id":"6f1c2a3e-8b4d-4c7a-9e2f-1a2b3c4d5e6f","title":"Festa","client_name":"Ana",` +
		`"date":"2024-03-05","status":"finalized","total":"R$ 380,00",` +
		`"items":[{"id":"0b6b3f5e-1c2d-4e3f-8a9b-0c1d2e3f4a5b","product_name":"Banner","quantity":2,"unit_price":80.00},` +
		`{"id":"1c7c4a6f-2d3e-4f5a-9b0c-1d2e3f4a5b6c","product_name":"Plate","quantity":1,"unit_price":"150.00"}],` +
		`"created_at":"2024-03-05T10:00:00Z"}]`
	require.NoError(t, cache.Set(ctx, localstore.Key, []byte(raw)))

	store := localstore.New(cache)

	listed, err := store.ListBudgets(ctx, budget.ListFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "R$ 310,00", listed[0].Total.String())
	assert.True(t, listed[0].Consistent())

	got, err := store.GetBudget(ctx, listed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(31000), got.Total)
}

func TestScenario_BannerPlateSticker(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, budget.CreateParams{
		ClientName: "Gráfica Central",
		Items: []budget.ItemParams{
			{ProductName: "Banner", Quantity: 2, UnitPrice: money.MustParse("80.00")},
			{ProductName: "Plate", Quantity: 1, UnitPrice: money.MustParse("150.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "R$ 310,00", created.Total.String())
	assert.Equal(t, budget.StatusPending, created.Status)

	f.bus.Wait()
	assert.Equal(t, int32(1), f.notified.Load())

	_, err = f.svc.Update(ctx, created.ID, budget.UpdateParams{
		Items: []budget.ItemParams{{ProductName: "Sticker", Quantity: 3, UnitPrice: money.MustParse("25.00")}},
	})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "R$ 75,00", got.Total.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Sticker", got.Items[0].ProductName)

	f.bus.Wait()
	assert.Equal(t, int32(2), f.notified.Load())
}
