package provider

import (
	"context"
	"fmt"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/domain"
)

// Ensure Fake implements application.ProductLister.
var _ application.ProductLister = (*Fake)(nil)

// Fake returns a deterministic page of size products per category, newest
// first.
type Fake struct {
	size int
}

func NewFake(size int) *Fake { return &Fake{size: size} }

func (f *Fake) ListByCategory(_ context.Context, category, subcategory string) (domain.CacheEntry, error) {
	sub := domain.NormalizeSubcategory(subcategory)
	data := make([]domain.ProductSummary, f.size)
	for i := range data {
		n := f.size - i
		data[i] = domain.ProductSummary{
			ID:           fmt.Sprintf("%s-%s-%03d", category, sub, n),
			Name:         fmt.Sprintf("%s %s #%d", category, sub, n),
			SellingPrice: float64(100000 + n*1000),
			Images:       []string{fmt.Sprintf("https://cdn.bluetec.example/%s/%s/%d.webp", category, sub, n)},
			Subcategory:  sub,
			Slug:         fmt.Sprintf("%s-%s-%d", category, sub, n),
		}
	}
	return domain.CacheEntry{Success: true, Data: data}, nil
}
