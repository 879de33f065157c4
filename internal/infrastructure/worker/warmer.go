package worker

import (
	"context"
	"time"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/domain"

	"go.uber.org/zap"
)

var _ application.Worker = (*Warmer)(nil)

type batchRunner interface {
	Run(ctx context.Context, items []domain.BatchItem) []domain.BatchOutcome
	Wait()
}

type cacheClearer interface {
	ClearCache(ctx context.Context)
}

// Warmer loads the home-page priority list into the cache. With Every > 0 it
// drops the cache and loads the list again on that period.
type Warmer struct {
	Loader  batchRunner
	Catalog cacheClearer
	Items   []domain.BatchItem

	Every time.Duration
	Log   *zap.Logger
}

// Start runs one pass and then, if periodic, keeps re-warming until ctx is
// done. A one-shot warmer returns after its pass and background wave.
func (w *Warmer) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if len(w.Items) == 0 {
		log.Info("warmer.nothing_to_do")
		return
	}

	w.pass(ctx, log)
	if w.Every <= 0 {
		return
	}

	t := time.NewTicker(w.Every)
	defer t.Stop()

	log.Info("warmer.started", zap.Duration("every", w.Every), zap.Int("items", len(w.Items)))
	for {
		select {
		case <-ctx.Done():
			log.Info("warmer.stopped")
			return
		case <-t.C:
			if w.Catalog != nil {
				w.Catalog.ClearCache(ctx)
			}
			w.pass(ctx, log)
		}
	}
}

func (w *Warmer) pass(ctx context.Context, log *zap.Logger) {
	start := time.Now()
	out := w.Loader.Run(ctx, w.Items)
	w.Loader.Wait()

	failed := 0
	for _, o := range out {
		if o.Status == domain.BatchRejected {
			failed++
		}
	}
	if failed > 0 {
		log.Warn("warmer.pass_incomplete", zap.Int("failed", failed), zap.Int("items", len(out)))
		return
	}
	log.Info("warmer.pass_done", zap.Int("items", len(out)), zap.Duration("duration", time.Since(start)))
}
