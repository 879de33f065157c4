package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/domain"
	"bluetec-catalog/internal/infrastructure/httpx"
)

// CatalogAPIProvider calls the storefront's product-listing endpoint:
//
//	GET {BaseURL}{Path}?category=...&subcategory=...
//	-> {"success": bool, "data": [...], "filters": {...}}
type CatalogAPIProvider struct {
	BaseURL string
	Path    string
	Client  *httpx.Client
}

var _ application.ProductLister = (*CatalogAPIProvider)(nil)

func (p *CatalogAPIProvider) ListByCategory(ctx context.Context, category, subcategory string) (domain.CacheEntry, error) {
	if p.BaseURL == "" {
		return domain.CacheEntry{}, errors.New("catalogapi: missing base url")
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return domain.CacheEntry{}, fmt.Errorf("catalogapi: invalid base url: %w", err)
	}
	u.Path = p.Path
	q := u.Query()
	q.Set("category", category)
	if subcategory != "" {
		q.Set("subcategory", subcategory)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.CacheEntry{}, fmt.Errorf("catalogapi: create request: %w", err)
	}
	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body domain.CacheEntry
	if err := client.DoJSON(ctx, req, &body); err != nil {
		return domain.CacheEntry{}, fmt.Errorf("catalogapi: %w", err)
	}
	if body.Data == nil {
		body.Data = []domain.ProductSummary{}
	}
	return body, nil
}
