package memory

import (
	"context"
	"sync"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// Compile-time interface check.
var _ port.ReviewQueue = (*ReviewQueue)(nil)

// ReviewQueue holds manual review items in arrival order.
type ReviewQueue struct {
	mu    sync.Mutex
	items []port.ReviewItem
}

// NewReviewQueue creates an empty in-memory review queue.
func NewReviewQueue() *ReviewQueue {
	return &ReviewQueue{}
}

// Enqueue appends an item.
func (q *ReviewQueue) Enqueue(_ context.Context, item port.ReviewItem) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
	return nil
}

// Items returns a copy of the queued items.
func (q *ReviewQueue) Items() []port.ReviewItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]port.ReviewItem(nil), q.items...)
}
