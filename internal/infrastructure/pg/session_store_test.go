package pg_test

import (
	"context"
	"testing"
	"time"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/domain"
	"bluetec-catalog/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	db := withPostgres(t)
	ctx := context.Background()
	store := pg.NewSessionStore(db, "test:products")

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, application.ErrNoSnapshot)

	require.NoError(t, store.Save(ctx, []byte(`{"timestamp": 1, "cache": []}`)))
	require.NoError(t, store.Save(ctx, []byte(`{"timestamp": 2, "cache": []}`)))
	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	b, err := store.Load(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"timestamp": 2, "cache": []}`, string(b))

	require.NoError(t, store.Delete(ctx))
	ok, err = store.Exists(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessionStore_BacksCacheStore(t *testing.T) {
	db := withPostgres(t)
	ctx := context.Background()
	store := pg.NewSessionStore(db, "test:restore")

	first := application.NewCacheStore(ctx, store)
	first.Set(ctx, "a-x-5", domain.CacheEntry{
		Success: true,
		Data:    []domain.ProductSummary{{ID: "1", Images: []string{"u"}}},
		Filters: []byte(`{"brands":["acme"]}`),
	})

	second := application.NewCacheStore(ctx, store, application.WithStaleAfter(time.Minute))
	e, ok := second.Get("a-x-5")
	require.True(t, ok)
	require.Equal(t, "1", e.Data[0].ID)
	require.JSONEq(t, `{"brands":["acme"]}`, string(e.Filters))
}
