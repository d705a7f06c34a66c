package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// Compile-time interface check.
var _ port.ReviewQueue = (*ReviewQueue)(nil)

// ReviewQueue pushes manual review items onto a Redis list. Producers LPUSH;
// reviewers consume from the tail with RPOP or BRPOP.
type ReviewQueue struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

// NewReviewQueue creates a queue on the given list key.
func NewReviewQueue(client *redis.Client, key string) *ReviewQueue {
	return &ReviewQueue{client: client, key: key, now: time.Now}
}

// Enqueue serializes the item as JSON and pushes it onto the list.
func (q *ReviewQueue) Enqueue(ctx context.Context, item port.ReviewItem) error {
	if item.EnqueuedAt.IsZero() {
		item.EnqueuedAt = q.now().UTC()
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal review item: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", q.key, err)
	}
	return nil
}

// Len returns the number of items waiting for review.
func (q *ReviewQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("llen %s: %w", q.key, err)
	}
	return n, nil
}

// Next pops the oldest item, or returns false when the queue is empty.
func (q *ReviewQueue) Next(ctx context.Context) (port.ReviewItem, bool, error) {
	raw, err := q.client.RPop(ctx, q.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return port.ReviewItem{}, false, nil
	}
	if err != nil {
		return port.ReviewItem{}, false, fmt.Errorf("rpop %s: %w", q.key, err)
	}
	var item port.ReviewItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return port.ReviewItem{}, false, fmt.Errorf("unmarshal review item: %w", err)
	}
	return item, true, nil
}
