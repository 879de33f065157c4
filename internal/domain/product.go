package domain

import "encoding/json"

// ProductSummary is the listing projection of a product. Full detail is
// served by the product-detail endpoint and never cached here.
type ProductSummary struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	SellingPrice float64  `json:"sellingPrice"`
	Price        *float64 `json:"price,omitempty"`
	Images       []string `json:"images"`
	Subcategory  string   `json:"subcategory"`
	Slug         string   `json:"slug"`
}

// FirstImage returns the first image URL, or "" when the product has none.
func (p ProductSummary) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CacheEntry is the product-listing response payload, stored verbatim.
type CacheEntry struct {
	Success bool             `json:"success"`
	Data    []ProductSummary `json:"data"`
	Filters json.RawMessage  `json:"filters,omitempty"`
}

// Truncate returns a copy of e holding at most limit products, in order.
// A limit <= 0 returns e unchanged.
func (e CacheEntry) Truncate(limit int) CacheEntry {
	if limit <= 0 || len(e.Data) <= limit {
		return e
	}
	out := e
	out.Data = make([]ProductSummary, limit)
	copy(out.Data, e.Data[:limit])
	return out
}
