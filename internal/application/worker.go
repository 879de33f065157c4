package application

import "context"

// Worker represents a background processor.
// Start blocks until the context is canceled or the worker has no more work.
type Worker interface {
	Start(ctx context.Context)
}
