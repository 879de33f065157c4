package httpserver

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/domain"
	"bluetec-catalog/internal/infrastructure/provider"
	"bluetec-catalog/internal/infrastructure/session"
)

var errUpstream = errors.New("upstream 503")

var _ application.ProductLister = (*flakyLister)(nil)

// flakyLister serves the deterministic fake catalog and fails for the
// "broken" category.
type flakyLister struct {
	inner *provider.Fake
	calls atomic.Int64
}

func (f *flakyLister) ListByCategory(ctx context.Context, category, subcategory string) (domain.CacheEntry, error) {
	f.calls.Add(1)
	if category == "broken" {
		return domain.CacheEntry{}, errUpstream
	}
	return f.inner.ListByCategory(ctx, category, subcategory)
}

func newTestServer(size int) (*Server, *flakyLister, *session.MemoryStore) {
	sess := session.NewMemoryStore()
	store := application.NewCacheStore(context.Background(), sess)
	lister := &flakyLister{inner: provider.NewFake(size)}
	svc := application.NewCatalogService(store, lister)
	return NewServer(svc, domain.DefaultLoadTuning(), nil), lister, sess
}

func setup(size int) (http.Handler, *flakyLister) {
	srv, lister, _ := newTestServer(size)
	return NewRouter(srv), lister
}
