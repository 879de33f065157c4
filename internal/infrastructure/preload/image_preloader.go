package preload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// RFC 9218 priority hints: the first product is fetched eagerly, the rest
// incrementally at low urgency.
const (
	priorityEager = "u=1"
	priorityLazy  = "u=5, i"
)

// HTTPPreloader warms an image CDN/proxy cache by fetching the first image
// of each product. Failures are logged at debug and otherwise ignored.
type HTTPPreloader struct {
	Client  *http.Client
	Timeout time.Duration
	Log     *zap.Logger

	sem *semaphore.Weighted
}

var _ application.ImagePreloader = (*HTTPPreloader)(nil)

func NewHTTPPreloader(client *http.Client, concurrency int, timeout time.Duration, log *zap.Logger) *HTTPPreloader {
	if concurrency <= 0 {
		concurrency = 4
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPPreloader{
		Client:  client,
		Timeout: timeout,
		Log:     log,
		sem:     semaphore.NewWeighted(int64(concurrency)),
	}
}

// Preload returns immediately; fetches run in the background.
func (p *HTTPPreloader) Preload(ctx context.Context, products []domain.ProductSummary) {
	for i, prod := range products {
		img := prod.FirstImage()
		if img == "" {
			continue
		}
		hint := priorityLazy
		if i == 0 {
			hint = priorityEager
		}
		go p.fetch(ctx, img, hint)
	}
}

func (p *HTTPPreloader) fetch(ctx context.Context, url, hint string) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.Log.Debug("preload.skipped", zap.String("url", url), zap.Error(err))
		return
	}
	defer p.sem.Release(1)

	if err := p.get(ctx, url, hint); err != nil {
		p.Log.Debug("preload.failed", zap.String("url", url), zap.Error(err))
		return
	}
	p.Log.Debug("preload.done", zap.String("url", url), zap.String("priority", hint))
}

func (p *HTTPPreloader) get(ctx context.Context, url, hint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Priority", hint)
	req.Header.Set("Accept", "image/avif,image/webp,image/*")
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
