package application

import (
	"context"
	"sync"
	"time"

	"bluetec-catalog/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const DefaultFetchTimeout = 10 * time.Second

// CatalogService is the cache-aside read path: cache lookup, in-flight
// de-duplication per fingerprint, fetch, truncate, commit.
type CatalogService struct {
	store  *CacheStore
	lister ProductLister
	hooks  []CommitHook

	flights   singleflight.Group
	pendingMu sync.Mutex
	pending   map[domain.Fingerprint]struct{}

	fetchTimeout time.Duration
	batchLimit   int
	log          *zap.Logger
}

type Option func(*CatalogService)

func WithCommitHook(h CommitHook) Option {
	return func(s *CatalogService) { s.hooks = append(s.hooks, h) }
}
func WithFetchTimeout(d time.Duration) Option { return func(s *CatalogService) { s.fetchTimeout = d } }
func WithLogger(l *zap.Logger) Option         { return func(s *CatalogService) { s.log = l } }

// WithBatchConcurrency bounds BatchLoadPriority; 0 means unbounded.
func WithBatchConcurrency(n int) Option { return func(s *CatalogService) { s.batchLimit = n } }

func NewCatalogService(store *CacheStore, lister ProductLister, opts ...Option) *CatalogService {
	s := &CatalogService{
		store:   store,
		lister:  lister,
		pending: map[domain.Fingerprint]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetchTimeout <= 0 {
		s.fetchTimeout = DefaultFetchTimeout
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

var _ ProductGetter = (*CatalogService)(nil)
var _ PriorityBatcher = (*CatalogService)(nil)

// GetProducts returns the cached page for the query or fetches it. Callers
// asking for the same fingerprint while a fetch is running share its result
// or its *domain.FetchError. Failures are never cached.
//
// The collaborator is always asked for the whole category and the result is
// truncated to limit afterwards, so small limits still pay for a full fetch.
func (s *CatalogService) GetProducts(ctx context.Context, category, subcategory string, priority domain.Priority, limit int) (domain.CacheEntry, error) {
	if category == "" {
		return domain.CacheEntry{}, domain.ErrEmptyCategory
	}
	fp := domain.NewFingerprint(category, subcategory, limit)
	if e, ok := s.store.Get(fp); ok {
		return e, nil
	}

	ch := s.flights.DoChan(string(fp), func() (any, error) {
		return s.fetchAndCache(ctx, fp, category, subcategory, priority, limit)
	})
	select {
	case <-ctx.Done():
		return domain.CacheEntry{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.CacheEntry{}, res.Err
		}
		return res.Val.(domain.CacheEntry), nil
	}
}

func (s *CatalogService) fetchAndCache(ctx context.Context, fp domain.Fingerprint, category, subcategory string, priority domain.Priority, limit int) (domain.CacheEntry, error) {
	s.markPending(fp)
	defer s.unmarkPending(fp)

	// A flight for fp may have committed between our miss and this call.
	if e, ok := s.store.Get(fp); ok {
		return e, nil
	}

	// The shared call outlives any single caller's cancellation.
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
	defer cancel()

	log := s.log.With(zap.String("fingerprint", string(fp)), zap.String("priority", string(priority)))
	start := time.Now()
	entry, err := s.lister.ListByCategory(fctx, category, listingSubcategory(subcategory))
	if err == nil && !entry.Success {
		err = domain.ErrUnsuccessfulListing
	}
	if err != nil {
		log.Warn("catalog.fetch_failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return domain.CacheEntry{}, &domain.FetchError{Category: category, Subcategory: subcategory, Err: err}
	}

	fetched := len(entry.Data)
	entry = entry.Truncate(limit)
	s.store.Set(fctx, fp, entry)
	log.Info("catalog.fetched",
		zap.Int("fetched", fetched),
		zap.Int("cached", len(entry.Data)),
		zap.Duration("duration", time.Since(start)),
	)

	ev := CommitEvent{Fingerprint: fp, Entry: entry, Priority: priority}
	for _, h := range s.hooks {
		h.OnCacheCommit(context.WithoutCancel(ctx), ev)
	}
	return entry, nil
}

// BatchLoadPriority loads every item concurrently at high priority and
// settles all of them; one failure never cancels the others.
func (s *CatalogService) BatchLoadPriority(ctx context.Context, items []domain.BatchItem) []domain.BatchOutcome {
	out := make([]domain.BatchOutcome, len(items))
	var g errgroup.Group
	if s.batchLimit > 0 {
		g.SetLimit(s.batchLimit)
	}
	for i, it := range items {
		g.Go(func() error {
			out[i] = s.loadOne(ctx, it, domain.PriorityHigh)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *CatalogService) loadOne(ctx context.Context, it domain.BatchItem, priority domain.Priority) domain.BatchOutcome {
	e, err := s.GetProducts(ctx, it.Category, it.Subcategory, priority, it.Limit)
	if err != nil {
		s.log.Warn("catalog.batch_item_failed",
			zap.String("category", it.Category),
			zap.String("subcategory", it.Subcategory),
			zap.Error(err),
		)
		return domain.BatchOutcome{Item: it, Status: domain.BatchRejected, Err: err}
	}
	return domain.BatchOutcome{Item: it, Status: domain.BatchFulfilled, Entry: e}
}

func (s *CatalogService) ClearCache(ctx context.Context) {
	s.store.Clear(ctx)
	s.log.Info("catalog.cache_cleared")
}

type Stats struct {
	EntryCount     int
	PendingCount   int
	HasDurableCopy bool
}

// GetStats is read-only.
func (s *CatalogService) GetStats(ctx context.Context) Stats {
	s.pendingMu.Lock()
	pending := len(s.pending)
	s.pendingMu.Unlock()
	return Stats{
		EntryCount:     s.store.Len(),
		PendingCount:   pending,
		HasDurableCopy: s.store.HasDurableCopy(ctx),
	}
}

func (s *CatalogService) markPending(fp domain.Fingerprint) {
	s.pendingMu.Lock()
	s.pending[fp] = struct{}{}
	s.pendingMu.Unlock()
}

func (s *CatalogService) unmarkPending(fp domain.Fingerprint) {
	s.pendingMu.Lock()
	delete(s.pending, fp)
	s.pendingMu.Unlock()
}

// listingSubcategory maps the "all" sentinel back to an absent subcategory.
func listingSubcategory(sub string) string {
	if domain.NormalizeSubcategory(sub) == domain.AllSubcategories {
		return ""
	}
	return sub
}
