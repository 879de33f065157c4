package application

import (
	"context"
	"sync"
	"time"

	"bluetec-catalog/internal/domain"

	"go.uber.org/zap"
)

type LoadState string

const (
	StateInitial     LoadState = "initial"
	StatePartial     LoadState = "partial"
	StateLoadingMore LoadState = "loading_more"
	StateComplete    LoadState = "complete"
)

// visiblePreloadCount is how many above-the-fold products get their image
// warmed after the initial fetch.
const visiblePreloadCount = 4

type ProgressiveOptions struct {
	// Limit is the caller's initial page size; the device profile may lower it.
	Limit int
	// Progressive enables the follow-up fetch of the complete result set.
	Progressive bool
	// AutoContinue starts that fetch on its own after the device delay.
	AutoContinue bool
	Preloader    ImagePreloader
	Logger       *zap.Logger
}

type ProgressiveSnapshot struct {
	State       LoadState
	Entry       domain.CacheEntry
	Loading     bool
	LoadingMore bool
	IsComplete  bool
	Err         error
}

// ProgressiveLoader loads one (category, subcategory) listing in two steps:
// a small device-sized page first, then optionally everything.
type ProgressiveLoader struct {
	products    ProductGetter
	device      domain.DeviceProfile
	category    string
	subcategory string
	opts        ProgressiveOptions
	log         *zap.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu          sync.Mutex
	state       LoadState
	entry       domain.CacheEntry
	loading     bool
	loadingMore bool
	err         error
	gen         uint64
	timer       *time.Timer
}

func NewProgressiveLoader(products ProductGetter, device domain.DeviceProfile, category, subcategory string, opts ProgressiveOptions) *ProgressiveLoader {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ProgressiveLoader{
		products:    products,
		device:      device,
		category:    category,
		subcategory: subcategory,
		opts:        opts,
		log:         log.With(zap.String("category", category), zap.String("subcategory", subcategory)),
		baseCtx:     ctx,
		cancel:      cancel,
		state:       StateInitial,
	}
}

// Load runs the initial fetch. It is a no-op while an initial fetch is
// already running or once data has been loaded.
func (p *ProgressiveLoader) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.loading || p.state != StateInitial || p.entry.Success {
		p.mu.Unlock()
		return nil
	}
	gen := p.beginLocked()
	p.mu.Unlock()
	return p.fetchInitial(ctx, gen)
}

// Refresh drops the current data and re-enters the initial state. An older
// in-flight fetch is superseded; its result is discarded.
func (p *ProgressiveLoader) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.entry = domain.CacheEntry{}
	p.loadingMore = false
	gen := p.beginLocked()
	p.mu.Unlock()
	return p.fetchInitial(ctx, gen)
}

func (p *ProgressiveLoader) beginLocked() uint64 {
	p.stopTimerLocked()
	p.gen++
	p.state = StateInitial
	p.loading = true
	p.err = nil
	return p.gen
}

func (p *ProgressiveLoader) fetchInitial(ctx context.Context, gen uint64) error {
	limit := p.device.InitialLimit(p.opts.Limit)
	e, err := p.products.GetProducts(ctx, p.category, p.subcategory, domain.PriorityHigh, limit)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil
	}
	p.loading = false
	if err != nil {
		p.err = err
		p.log.Warn("progressive.initial_failed", zap.Error(err))
		return err
	}
	p.entry = e
	if limit > 0 && len(e.Data) >= limit {
		p.state = StatePartial
		p.scheduleLocked()
	} else {
		p.state = StateComplete
	}
	// Preloads outlive both the caller and Close; only auto-continue is tied to baseCtx.
	if p.opts.Preloader != nil && len(e.Data) > 0 {
		p.opts.Preloader.Preload(context.WithoutCancel(ctx), e.Data[:min(visiblePreloadCount, len(e.Data))])
	}
	return nil
}

// LoadComplete fetches the complete result set. It only acts from the
// partial state and always ends in the complete state.
func (p *ProgressiveLoader) LoadComplete(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StatePartial {
		p.mu.Unlock()
		return nil
	}
	p.stopTimerLocked()
	p.state = StateLoadingMore
	p.loadingMore = true
	gen := p.gen
	p.mu.Unlock()

	e, err := p.products.GetProducts(ctx, p.category, p.subcategory, domain.PriorityNormal, p.device.CompleteLimit())

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil
	}
	p.loadingMore = false
	p.state = StateComplete
	if err != nil {
		p.err = err
		p.log.Warn("progressive.complete_failed", zap.Error(err))
		return err
	}
	p.entry = e
	p.log.Debug("progressive.completed", zap.Int("count", len(e.Data)))
	return nil
}

func (p *ProgressiveLoader) Snapshot() ProgressiveSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProgressiveSnapshot{
		State:       p.state,
		Entry:       p.entry,
		Loading:     p.loading,
		LoadingMore: p.loadingMore,
		IsComplete:  p.state == StateComplete,
		Err:         p.err,
	}
}

// Close stops a pending automatic continuation.
func (p *ProgressiveLoader) Close() {
	p.mu.Lock()
	p.stopTimerLocked()
	p.mu.Unlock()
	p.cancel()
}

func (p *ProgressiveLoader) scheduleLocked() {
	if !p.opts.Progressive || !p.opts.AutoContinue || !p.device.AutoContinue() {
		return
	}
	if p.baseCtx.Err() != nil {
		return
	}
	p.timer = time.AfterFunc(p.device.ContinueDelay(), func() {
		_ = p.LoadComplete(p.baseCtx)
	})
}

func (p *ProgressiveLoader) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
