package application

import (
	"context"
	"sync"
	"time"

	"bluetec-catalog/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Catalog is what the batch loader needs from CatalogService.
type Catalog interface {
	ProductGetter
	PriorityBatcher
}

type BatchStatus struct {
	GlobalLoading    bool
	PriorityComplete bool
	CurrentPhase     int
}

// BatchLoader warms the cache for a curated priority list. Constrained
// devices load it in sequential phases; capable ones fire everything at once
// and then complete the same categories in a background wave.
type BatchLoader struct {
	catalog Catalog
	device  domain.DeviceProfile
	log     *zap.Logger

	mu     sync.Mutex
	status BatchStatus
	bg     sync.WaitGroup
}

func NewBatchLoader(catalog Catalog, device domain.DeviceProfile, log *zap.Logger) *BatchLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &BatchLoader{catalog: catalog, device: device, log: log}
}

// Run returns once the priority set has settled. Failed items are logged
// and reported as rejected outcomes; they never abort the batch.
func (b *BatchLoader) Run(ctx context.Context, items []domain.BatchItem) []domain.BatchOutcome {
	b.setStatus(BatchStatus{GlobalLoading: true})
	start := time.Now()

	var out []domain.BatchOutcome
	if b.device.IsConstrained() {
		out = b.runSequential(ctx, items)
	} else {
		out = b.catalog.BatchLoadPriority(ctx, items)
		b.startBackgroundWave(ctx, items)
	}

	b.mu.Lock()
	b.status.GlobalLoading = false
	b.status.PriorityComplete = true
	b.mu.Unlock()

	failed := 0
	for _, o := range out {
		if o.Status == domain.BatchRejected {
			failed++
		}
	}
	b.log.Info("batch.priority_complete",
		zap.Int("items", len(items)),
		zap.Int("failed", failed),
		zap.Bool("sequential", b.device.IsConstrained()),
		zap.Duration("duration", time.Since(start)),
	)
	return out
}

func (b *BatchLoader) Status() BatchStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Wait blocks until the background completion wave, if any, has finished.
func (b *BatchLoader) Wait() { b.bg.Wait() }

func (b *BatchLoader) runSequential(ctx context.Context, items []domain.BatchItem) []domain.BatchOutcome {
	out := make([]domain.BatchOutcome, 0, len(items))
	size := b.device.PhaseSize()
	for phase, lo := 1, 0; lo < len(items); phase, lo = phase+1, lo+size {
		hi := min(lo+size, len(items))
		if phase > 1 {
			if err := sleepCtx(ctx, b.device.PhaseDelay()); err != nil {
				return append(out, rejectAll(items[lo:], err)...)
			}
		}
		b.mu.Lock()
		b.status.CurrentPhase = phase
		b.mu.Unlock()

		for i, it := range items[lo:hi] {
			if i > 0 {
				if err := sleepCtx(ctx, b.device.RequestDelay()); err != nil {
					return append(out, rejectAll(items[lo+i:], err)...)
				}
			}
			out = append(out, b.loadOne(ctx, it))
		}
	}
	return out
}

func (b *BatchLoader) loadOne(ctx context.Context, it domain.BatchItem) domain.BatchOutcome {
	e, err := b.catalog.GetProducts(ctx, it.Category, it.Subcategory, domain.PriorityHigh, it.Limit)
	if err != nil {
		b.log.Warn("batch.item_failed",
			zap.String("category", it.Category),
			zap.String("subcategory", it.Subcategory),
			zap.Error(err),
		)
		return domain.BatchOutcome{Item: it, Status: domain.BatchRejected, Err: err}
	}
	return domain.BatchOutcome{Item: it, Status: domain.BatchFulfilled, Entry: e}
}

func (b *BatchLoader) startBackgroundWave(ctx context.Context, items []domain.BatchItem) {
	full := completeItems(items)
	if len(full) == 0 {
		return
	}
	b.bg.Add(1)
	go func() {
		defer b.bg.Done()
		if err := sleepCtx(ctx, b.device.Tuning.BackgroundDelay); err != nil {
			return
		}
		var g errgroup.Group
		for _, it := range full {
			g.Go(func() error {
				if _, err := b.catalog.GetProducts(ctx, it.Category, it.Subcategory, domain.PriorityNormal, 0); err != nil {
					b.log.Debug("batch.background_item_failed", zap.String("category", it.Category), zap.Error(err))
				}
				return nil
			})
		}
		_ = g.Wait()
		b.log.Info("batch.background_complete", zap.Int("items", len(full)))
	}()
}

func (b *BatchLoader) setStatus(s BatchStatus) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}

// completeItems returns the distinct categories of items with the limit
// removed.
func completeItems(items []domain.BatchItem) []domain.BatchItem {
	seen := map[domain.Fingerprint]bool{}
	var out []domain.BatchItem
	for _, it := range items {
		fp := domain.NewFingerprint(it.Category, it.Subcategory, 0)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, domain.BatchItem{Category: it.Category, Subcategory: it.Subcategory})
	}
	return out
}

func rejectAll(items []domain.BatchItem, err error) []domain.BatchOutcome {
	out := make([]domain.BatchOutcome, len(items))
	for i, it := range items {
		out[i] = domain.BatchOutcome{Item: it, Status: domain.BatchRejected, Err: err}
	}
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
