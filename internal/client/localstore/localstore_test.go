package localstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/client/localstore"
	"github.com/MrJamesThe3rd/quotedesk/internal/localcache"
)

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()

	cache, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	s := localstore.New(cache)

	c := &client.Client{Name: "Ana", Phone: "11 9999-0000"}
	require.NoError(t, s.CreateClient(ctx, c))
	require.NotEqual(t, uuid.Nil, c.ID)

	c.Address = "Rua A, 1"
	require.NoError(t, s.UpdateClient(ctx, c))

	got, err := s.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rua A, 1", got.Address)

	list, err := s.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteClient(ctx, c.ID))

	_, err = s.GetClient(ctx, c.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.ErrorIs(t, s.DeleteClient(ctx, c.ID), client.ErrNotFound)
}
