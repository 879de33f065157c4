package application

import (
	"context"

	"bluetec-catalog/internal/domain"
)

// CommitEvent is emitted after an entry is committed to the CacheStore.
type CommitEvent struct {
	Fingerprint domain.Fingerprint
	Entry       domain.CacheEntry
	Priority    domain.Priority
}

// CommitHook observes cache commits. Hooks run on the fetch path and must
// return quickly.
type CommitHook interface {
	OnCacheCommit(ctx context.Context, ev CommitEvent)
}

type CommitHookFunc func(ctx context.Context, ev CommitEvent)

func (f CommitHookFunc) OnCacheCommit(ctx context.Context, ev CommitEvent) { f(ctx, ev) }

const DefaultPreloadCount = 3

// PreloadHook warms the images of the first few products of high-priority
// commits.
type PreloadHook struct {
	preloader ImagePreloader
	count     int
}

var _ CommitHook = (*PreloadHook)(nil)

func NewPreloadHook(p ImagePreloader) *PreloadHook {
	return &PreloadHook{preloader: p, count: DefaultPreloadCount}
}

func (h *PreloadHook) OnCacheCommit(ctx context.Context, ev CommitEvent) {
	if h.preloader == nil || ev.Priority != domain.PriorityHigh || len(ev.Entry.Data) == 0 {
		return
	}
	n := min(h.count, len(ev.Entry.Data))
	h.preloader.Preload(ctx, ev.Entry.Data[:n])
}
