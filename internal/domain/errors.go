package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTransientFetch      = errors.New("transient fetch error")
	ErrUnsuccessfulListing = errors.New("listing returned success=false")
	ErrEmptyCategory       = errors.New("category is required")
)

// FetchError reports a failed product-listing call. It is never cached and
// is shared by every caller waiting on the same fingerprint.
type FetchError struct {
	Category    string
	Subcategory string
	Err         error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s/%s: %v", e.Category, NormalizeSubcategory(e.Subcategory), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrTransientFetch }
