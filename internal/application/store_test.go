package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"bluetec-catalog/internal/domain"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func savedSnapshot(t *testing.T, at time.Time, entries map[domain.Fingerprint]domain.CacheEntry) *memSession {
	t.Helper()
	b, err := encodeSnapshot(at, entries)
	require.NoError(t, err)
	return &memSession{data: b}
}

func TestCacheStore_RestoreFresh(t *testing.T) {
	t.Parallel()
	sess := savedSnapshot(t, now.Add(-10*time.Minute), map[domain.Fingerprint]domain.CacheEntry{
		"a-x-5": page("x", 5),
	})
	s := NewCacheStore(context.Background(), sess, WithStoreClock(fakeClock{t: now}))

	e, ok := s.Get("a-x-5")
	require.True(t, ok)
	require.Equal(t, page("x", 5), e)
}

func TestCacheStore_RestoreStale(t *testing.T) {
	t.Parallel()
	sess := savedSnapshot(t, now.Add(-31*time.Minute), map[domain.Fingerprint]domain.CacheEntry{
		"a-x-5": page("x", 5),
	})
	s := NewCacheStore(context.Background(), sess, WithStoreClock(fakeClock{t: now}))
	require.Equal(t, 0, s.Len())
}

func TestCacheStore_RestoreCorrupt(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{`{not json`, `{"cache":[]}`, `{"timestamp":1,"cache":[["only-key"]]}`} {
		s := NewCacheStore(context.Background(), &memSession{data: []byte(raw)}, WithStoreClock(fakeClock{t: now}))
		require.Equal(t, 0, s.Len(), raw)
	}
}

func TestCacheStore_SetPersistsSnapshot(t *testing.T) {
	t.Parallel()
	sess := &memSession{}
	s := NewCacheStore(context.Background(), sess, WithStoreClock(fakeClock{t: now}))
	s.Set(context.Background(), "a-x-5", page("x", 5))
	s.Set(context.Background(), "b-all-full", page("b", 2))

	require.True(t, s.HasDurableCopy(context.Background()))
	at, entries, err := decodeSnapshot(sess.data)
	require.NoError(t, err)
	require.Equal(t, now.UnixMilli(), at.UnixMilli())
	require.Len(t, entries, 2)
	require.Equal(t, page("b", 2), entries["b-all-full"])
	require.Contains(t, string(sess.data), `"timestamp":`)
	require.Contains(t, string(sess.data), `["a-x-5",{`)
}

func TestCacheStore_PersistFailureKeepsMemory(t *testing.T) {
	t.Parallel()
	sess := &memSession{saveErr: errors.New("quota exceeded")}
	s := NewCacheStore(context.Background(), sess)
	s.Set(context.Background(), "a-x-5", page("x", 5))
	s.Set(context.Background(), "a-y-5", page("y", 5))

	require.Equal(t, 2, s.Len())
	require.Equal(t, 1, sess.saves)
	require.False(t, s.HasDurableCopy(context.Background()))
}

func TestCacheStore_Clear(t *testing.T) {
	t.Parallel()
	sess := &memSession{}
	s := NewCacheStore(context.Background(), sess)
	s.Set(context.Background(), "a-x-5", page("x", 5))
	s.Clear(context.Background())

	require.Equal(t, 0, s.Len())
	require.False(t, s.HasDurableCopy(context.Background()))
	_, ok := s.Get("a-x-5")
	require.False(t, ok)
}

func TestCacheStore_MemoryOnly(t *testing.T) {
	t.Parallel()
	s := NewCacheStore(context.Background(), nil)
	s.Set(context.Background(), "a-x-5", page("x", 5))
	require.Equal(t, 1, s.Len())
	require.False(t, s.HasDurableCopy(context.Background()))
}

func TestSnapshot_PreservesFilters(t *testing.T) {
	t.Parallel()
	e := page("x", 1)
	e.Filters = []byte(`{"brands":["acme"]}`)
	b, err := encodeSnapshot(now, map[domain.Fingerprint]domain.CacheEntry{"a-x-full": e})
	require.NoError(t, err)
	_, entries, err := decodeSnapshot(b)
	require.NoError(t, err)
	require.JSONEq(t, `{"brands":["acme"]}`, string(entries["a-x-full"].Filters))
}
