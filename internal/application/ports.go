package application

import (
	"context"

	"bluetec-catalog/internal/domain"
)

// ProductLister is the storefront's product-listing endpoint. It is always
// asked for the full category; callers truncate.
type ProductLister interface {
	ListByCategory(ctx context.Context, category, subcategory string) (domain.CacheEntry, error)
}

// SessionStore is the durable-for-the-session mirror of the cache. One store
// holds a single snapshot under its namespace.
type SessionStore interface {
	// Load returns ErrNoSnapshot when nothing has been saved.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, snapshot []byte) error
	Delete(ctx context.Context) error
	Exists(ctx context.Context) (bool, error)
}

// ImagePreloader warms image caches. Implementations must not block and
// must not report failures.
type ImagePreloader interface {
	Preload(ctx context.Context, products []domain.ProductSummary)
}

// ProductGetter is the cache-backed read path used by the loaders.
type ProductGetter interface {
	GetProducts(ctx context.Context, category, subcategory string, priority domain.Priority, limit int) (domain.CacheEntry, error)
}

// PriorityBatcher loads a list of items concurrently and settles every one.
type PriorityBatcher interface {
	BatchLoadPriority(ctx context.Context, items []domain.BatchItem) []domain.BatchOutcome
}
