package localstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_ListByDateRange(t *testing.T) {
	ctx := context.Background()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	s := localstore.New(cache)

	for i, d := range []int{5, 20, 1, 31} {
		require.NoError(t, s.CreateExpense(ctx, &expense.Expense{Title: string(rune('A' + i)), Amount: 1000, Date: day(d)}))
	}

	got, err := s.ListExpenses(ctx, expense.ListFilter{StartDate: new(day(2)), EndDate: new(day(20))})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Title)
	assert.Equal(t, "A", got[1].Title)

	all, err := s.ListExpenses(ctx, expense.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, day(31), all[0].Date)

	require.NoError(t, s.DeleteExpense(ctx, all[0].ID))
	assert.ErrorIs(t, s.DeleteExpense(ctx, all[0].ID), expense.ErrNotFound)
}

func TestStore_UpdateExpense(t *testing.T) {
	ctx := context.Background()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	s := localstore.New(cache)

	e := &expense.Expense{Title: "Gás", Amount: 12000, Date: day(3)}
	require.NoError(t, s.CreateExpense(ctx, e))

	e.Title = "Gás de cozinha"
	e.Amount = 13500
	e.Date = day(4)
	require.NoError(t, s.UpdateExpense(ctx, e))

	got, err := s.GetExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gás de cozinha", got.Title)
	assert.Equal(t, money.Amount(13500), got.Amount)
	assert.Equal(t, day(4), got.Date)
	assert.True(t, e.CreatedAt.Equal(got.CreatedAt))

	missing := *e
	missing.ID = uuid.New()
	assert.ErrorIs(t, s.UpdateExpense(ctx, &missing), expense.ErrNotFound)
}
