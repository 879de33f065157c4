package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bluetec-catalog/internal/domain"
)

var ErrProvider = errors.New("provider down")

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

// fakeLister serves pages per category/subcategory and counts calls. When
// gate is set every call blocks until it is closed.
type fakeLister struct {
	mu    sync.Mutex
	pages map[string]domain.CacheEntry
	errs  map[string]error
	gate  chan struct{}
	calls atomic.Int64
	seen  []string
}

func listerKey(category, subcategory string) string {
	return category + "/" + domain.NormalizeSubcategory(subcategory)
}

func (f *fakeLister) ListByCategory(ctx context.Context, category, subcategory string) (domain.CacheEntry, error) {
	f.calls.Add(1)
	key := listerKey(category, subcategory)
	f.mu.Lock()
	f.seen = append(f.seen, key)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.CacheEntry{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[key]; err != nil {
		return domain.CacheEntry{}, err
	}
	if p, ok := f.pages[key]; ok {
		return p, nil
	}
	return domain.CacheEntry{Success: true, Data: []domain.ProductSummary{}}, nil
}

func (f *fakeLister) setErr(category, subcategory string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errs == nil {
		f.errs = map[string]error{}
	}
	f.errs[listerKey(category, subcategory)] = err
}

func products(prefix string, n int) []domain.ProductSummary {
	out := make([]domain.ProductSummary, n)
	for i := range out {
		out[i] = domain.ProductSummary{
			ID:           fmt.Sprintf("%s-%02d", prefix, i),
			Name:         fmt.Sprintf("%s %d", prefix, i),
			SellingPrice: float64(100 + i),
			Images:       []string{fmt.Sprintf("https://cdn.example.com/%s/%d.webp", prefix, i)},
			Subcategory:  prefix,
			Slug:         fmt.Sprintf("%s-%d", prefix, i),
		}
	}
	return out
}

func page(prefix string, n int) domain.CacheEntry {
	return domain.CacheEntry{Success: true, Data: products(prefix, n)}
}

// memSession is an in-memory SessionStore with switchable failures.
type memSession struct {
	mu      sync.Mutex
	data    []byte
	saveErr error
	saves   int
}

func (m *memSession) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memSession) Save(_ context.Context, b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), b...)
	return nil
}

func (m *memSession) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func (m *memSession) Exists(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data != nil, nil
}

type recordingPreloader struct {
	mu    sync.Mutex
	calls [][]domain.ProductSummary
	ctxs  []context.Context
}

func (r *recordingPreloader) Preload(ctx context.Context, ps []domain.ProductSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]domain.ProductSummary(nil), ps...))
	r.ctxs = append(r.ctxs, ctx)
}

func (r *recordingPreloader) contexts() []context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]context.Context(nil), r.ctxs...)
}

func (r *recordingPreloader) snapshot() [][]domain.ProductSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]domain.ProductSummary(nil), r.calls...)
}
