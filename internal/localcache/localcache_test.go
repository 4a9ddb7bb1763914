package localcache_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func openCache(t *testing.T) *localcache.SQLite {
	t.Helper()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "nested", "cache.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = cache.Close() })

	return cache
}

func TestLoad_MissingKey(t *testing.T) {
	cache := openCache(t)

	got, err := localcache.Load[record](context.Background(), cache, "clients")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t)

	want := []record{{ID: 1, Name: "João Silva"}, {ID: 2, Name: "Maria Santos"}}
	require.NoError(t, localcache.Save(ctx, cache, "clients", want))

	got, err := localcache.Load[record](ctx, cache, "clients")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, localcache.Save(ctx, cache, "clients", want[:1]))

	got, err = localcache.Load[record](ctx, cache, "clients")
	require.NoError(t, err)
	assert.Equal(t, want[:1], got)
}

func TestLoad_MalformedValueFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t)

	require.NoError(t, cache.Set(ctx, "products", []byte(`{not json`)))

	got, err := localcache.Load[record](ctx, cache, "products")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_NullValue(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t)

	require.NoError(t, cache.Set(ctx, "products", []byte(`null`)))

	got, err := localcache.Load[record](ctx, cache, "products")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollection_Update(t *testing.T) {
	ctx := context.Background()
	col := localcache.NewCollection[record](openCache(t), "budgets")

	err := col.Update(ctx, func(rs []record) ([]record, error) {
		return append(rs, record{ID: 1, Name: "first"}), nil
	})
	require.NoError(t, err)

	err = col.Update(ctx, func(rs []record) ([]record, error) {
		return nil, errors.New("abort")
	})
	require.Error(t, err)

	got, err := col.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 1, Name: "first"}}, got)
}
