package domain

// BatchItem is one (category, subcategory, limit) triple of a warm-up list.
type BatchItem struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type BatchOutcomeStatus string

const (
	BatchFulfilled BatchOutcomeStatus = "fulfilled"
	BatchRejected  BatchOutcomeStatus = "rejected"
)

// BatchOutcome is the settled result of one BatchItem.
type BatchOutcome struct {
	Item   BatchItem
	Status BatchOutcomeStatus
	Entry  CacheEntry
	Err    error
}
