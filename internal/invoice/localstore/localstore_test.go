package localstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/invoice"
	"github.com/MrJamesThe3rd/quotedesk/internal/invoice/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	s := localstore.New(cache)

	seed := []*invoice.Invoice{
		{Title: "Banner personalizado", ClientName: "João Silva", Amount: 12000, Date: day(2)},
		{Title: "Adesivos diversos", ClientName: "Maria Santos", Amount: 8500, Date: day(4)},
		{Title: "Cartões", ClientName: "João Silva", Amount: 4000, Date: day(20)},
	}
	for _, inv := range seed {
		require.NoError(t, s.CreateInvoice(ctx, inv))
	}

	got, err := s.ListInvoices(ctx, invoice.ListFilter{StartDate: new(day(1)), EndDate: new(day(10))})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Adesivos diversos", got[0].Title)
	assert.Equal(t, "Banner personalizado", got[1].Title)

	got, err = s.ListInvoices(ctx, invoice.ListFilter{Client: new("João Silva")})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cartões", got[0].Title)

	edited := *seed[1]
	edited.Amount = 9000
	edited.Date = day(5)
	require.NoError(t, s.UpdateInvoice(ctx, &edited))

	stored, err := s.GetInvoice(ctx, seed[1].ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(9000), stored.Amount)
	assert.Equal(t, day(5), stored.Date)
	assert.Equal(t, "Maria Santos", stored.ClientName)

	require.NoError(t, s.DeleteInvoice(ctx, seed[0].ID))
	assert.ErrorIs(t, s.DeleteInvoice(ctx, seed[0].ID), invoice.ErrNotFound)

	_, err = s.GetInvoice(ctx, seed[0].ID)
	assert.ErrorIs(t, err, invoice.ErrNotFound)

	all, err := s.ListInvoices(ctx, invoice.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
