package domain

import (
	"strconv"
	"strings"
)

const (
	AllSubcategories = "all"
	fullLimit        = "full"
)

// Fingerprint is the normalized cache key of a product query.
type Fingerprint string

// keyPartEscaper escapes the separator inside a key part so slugs that
// contain '-' cannot collide across the category/subcategory boundary.
var keyPartEscaper = strings.NewReplacer("%", "%25", "-", "%2D")

// NewFingerprint derives the key for (category, subcategory, limit).
// An empty subcategory is the same query as "all", and limit <= 0 means
// the full result set.
func NewFingerprint(category, subcategory string, limit int) Fingerprint {
	category = keyPartEscaper.Replace(category)
	sub := keyPartEscaper.Replace(NormalizeSubcategory(subcategory))
	lim := fullLimit
	if limit > 0 {
		lim = strconv.Itoa(limit)
	}
	var b strings.Builder
	b.Grow(len(category) + len(sub) + len(lim) + 2)
	b.WriteString(category)
	b.WriteByte('-')
	b.WriteString(sub)
	b.WriteByte('-')
	b.WriteString(lim)
	return Fingerprint(b.String())
}

// NormalizeSubcategory maps an absent subcategory to "all".
func NormalizeSubcategory(subcategory string) string {
	if strings.TrimSpace(subcategory) == "" {
		return AllSubcategories
	}
	return subcategory
}
