package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manvaasam/platform/internal/api/metrics"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for delivery events backed by Redis.
// Key format: dedup:<order_number>:<status>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact event has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, orderNumber, status string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(orderNumber, status, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if n > 0 {
		metrics.DeliveryEventsDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.DeliveryEventsDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, orderNumber, status string, ts time.Time) error {
	return d.client.Set(ctx, d.key(orderNumber, status, ts), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(orderNumber, status string, ts time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", orderNumber, status, ts.Unix())
}
