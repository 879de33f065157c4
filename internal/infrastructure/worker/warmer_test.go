package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/domain"
	"bluetec-catalog/internal/infrastructure/provider"
	"bluetec-catalog/internal/infrastructure/session"

	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	mu    sync.Mutex
	runs  int
	waits int
	fail  bool
}

func (c *countingRunner) Run(_ context.Context, items []domain.BatchItem) []domain.BatchOutcome {
	c.mu.Lock()
	c.runs++
	c.mu.Unlock()
	out := make([]domain.BatchOutcome, len(items))
	for i, it := range items {
		status := domain.BatchFulfilled
		if c.fail {
			status = domain.BatchRejected
		}
		out[i] = domain.BatchOutcome{Item: it, Status: status}
	}
	return out
}

func (c *countingRunner) Wait() {
	c.mu.Lock()
	c.waits++
	c.mu.Unlock()
}

func (c *countingRunner) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runs, c.waits
}

type countingClearer struct {
	mu     sync.Mutex
	clears int
}

func (c *countingClearer) ClearCache(context.Context) {
	c.mu.Lock()
	c.clears++
	c.mu.Unlock()
}

var homeItems = []domain.BatchItem{
	{Category: "celulares", Limit: 8},
	{Category: "televisores", Limit: 8},
}

func TestWarmer_OneShot(t *testing.T) {
	r := &countingRunner{}
	c := &countingClearer{}
	w := &Warmer{Loader: r, Catalog: c, Items: homeItems}

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("one-shot warmer did not return")
	}

	runs, waits := r.counts()
	require.Equal(t, 1, runs)
	require.Equal(t, 1, waits)
	require.Zero(t, c.clears)
}

func TestWarmer_PeriodicClearsAndRewarms(t *testing.T) {
	r := &countingRunner{}
	c := &countingClearer{}
	w := &Warmer{Loader: r, Catalog: c, Items: homeItems, Every: 10 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	w.Start(ctx)

	runs, _ := r.counts()
	require.GreaterOrEqual(t, runs, 2)
	c.mu.Lock()
	defer c.mu.Unlock()
	require.Equal(t, runs-1, c.clears)
}

func TestWarmer_FailuresDoNotStopTheLoop(t *testing.T) {
	r := &countingRunner{fail: true}
	w := &Warmer{Loader: r, Items: homeItems, Every: 10 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	w.Start(ctx)

	runs, _ := r.counts()
	require.GreaterOrEqual(t, runs, 2)
}

func TestWarmer_NoItems(t *testing.T) {
	r := &countingRunner{}
	(&Warmer{Loader: r}).Start(context.Background())
	runs, _ := r.counts()
	require.Zero(t, runs)
}

func TestWarmer_FillsCatalogCache(t *testing.T) {
	store := application.NewCacheStore(context.Background(), session.NewMemoryStore())
	svc := application.NewCatalogService(store, provider.NewFake(12))
	tuning := domain.DefaultLoadTuning()
	tuning.BackgroundDelay = time.Millisecond
	loader := application.NewBatchLoader(svc, domain.NewDeviceProfile(1440, 8, tuning), nil)

	w := &Warmer{Loader: loader, Catalog: svc, Items: homeItems}
	w.Start(context.Background())

	e, err := svc.GetProducts(context.Background(), "celulares", "", domain.PriorityNormal, 8)
	require.NoError(t, err)
	require.Len(t, e.Data, 8)
	// priority pages plus the complete background pages
	require.Equal(t, 4, svc.GetStats(context.Background()).EntryCount)
}
