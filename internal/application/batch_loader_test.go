package application

import (
	"context"
	"testing"

	"bluetec-catalog/internal/domain"

	"github.com/stretchr/testify/require"
)

var homeItems = []domain.BatchItem{
	{Category: "informatica", Subcategory: "notebooks", Limit: 5},
	{Category: "perifericos", Subcategory: "mouses", Limit: 5},
	{Category: "perifericos", Subcategory: "teclados", Limit: 5},
}

func homeLister() *fakeLister {
	return &fakeLister{pages: map[string]domain.CacheEntry{
		"informatica/notebooks": page("nb", 12),
		"perifericos/mouses":    page("mouse", 9),
		"perifericos/teclados":  page("kb", 7),
	}}
}

func TestBatchLoader_SequentialOnConstrainedDevice(t *testing.T) {
	t.Parallel()
	l := homeLister()
	svc, _ := newService(t, l)
	b := NewBatchLoader(svc, phone, nil)

	out := b.Run(context.Background(), homeItems)
	require.Len(t, out, 3)
	for i, o := range out {
		require.Equal(t, homeItems[i], o.Item)
		require.Equal(t, domain.BatchFulfilled, o.Status)
		require.Len(t, o.Entry.Data, 5)
	}
	require.Equal(t, []string{"informatica/notebooks", "perifericos/mouses", "perifericos/teclados"}, l.seen)

	st := b.Status()
	require.False(t, st.GlobalLoading)
	require.True(t, st.PriorityComplete)
	require.Equal(t, 2, st.CurrentPhase)

	b.Wait()
	require.EqualValues(t, 3, l.calls.Load())
}

func TestBatchLoader_SequentialSkipsFailures(t *testing.T) {
	t.Parallel()
	l := homeLister()
	l.setErr("perifericos", "mouses", ErrProvider)
	svc, _ := newService(t, l)
	b := NewBatchLoader(svc, lowEnd, nil)

	out := b.Run(context.Background(), homeItems)
	require.Equal(t, domain.BatchFulfilled, out[0].Status)
	require.Equal(t, domain.BatchRejected, out[1].Status)
	require.Equal(t, domain.BatchFulfilled, out[2].Status)
	require.Equal(t, 2, svc.GetStats(context.Background()).EntryCount)
}

func TestBatchLoader_SequentialCanceled(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, homeLister())
	b := NewBatchLoader(svc, phone, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := b.Run(ctx, homeItems)
	require.Len(t, out, 3)
	require.Equal(t, domain.BatchRejected, out[2].Status)
	require.ErrorIs(t, out[2].Err, context.Canceled)
}

func TestBatchLoader_ParallelWithBackgroundWave(t *testing.T) {
	t.Parallel()
	l := homeLister()
	l.setErr("perifericos", "teclados", ErrProvider)
	svc, _ := newService(t, l)
	b := NewBatchLoader(svc, desktop, nil)

	out := b.Run(context.Background(), homeItems)
	require.Len(t, out, 3)
	require.Equal(t, domain.BatchFulfilled, out[0].Status)
	require.Equal(t, domain.BatchFulfilled, out[1].Status)
	require.Equal(t, domain.BatchRejected, out[2].Status)
	require.True(t, b.Status().PriorityComplete)

	b.Wait()
	for _, it := range homeItems[:2] {
		full, err := svc.GetProducts(context.Background(), it.Category, it.Subcategory, domain.PriorityNormal, 0)
		require.NoError(t, err)
		require.Greater(t, len(full.Data), 5)
	}
	// 3 priority fetches + 3 background fetches, the full pages are then cache hits
	require.EqualValues(t, 6, l.calls.Load())
	require.Equal(t, 4, svc.GetStats(context.Background()).EntryCount)
}

func TestCompleteItems_Dedup(t *testing.T) {
	t.Parallel()
	got := completeItems([]domain.BatchItem{
		{Category: "a", Subcategory: "x", Limit: 5},
		{Category: "a", Subcategory: "x", Limit: 10},
		{Category: "a", Limit: 3},
		{Category: "a", Subcategory: "all"},
	})
	require.Equal(t, []domain.BatchItem{{Category: "a", Subcategory: "x"}, {Category: "a"}}, got)
}
