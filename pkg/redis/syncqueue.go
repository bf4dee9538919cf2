package redis

import (
	"context"
	"errors"
	"time"

	redisclient "github.com/redis/go-redis/v9"
)

// Redis-backed job queue for replicating verified orders into the secondary
// commerce backend. Jobs are opaque JSON payloads; the worker owns the format.

const (
	syncPendingKey = "orders:sync:pending"
	syncDeadKey    = "orders:sync:dead"
)

// SyncQueue implements the queue the order sync worker consumes.
type SyncQueue struct{}

// Enqueue pushes a job payload onto the pending list.
func (SyncQueue) Enqueue(ctx context.Context, payload []byte) error {
	client := RedisClient()
	defer client.Close()

	return client.LPush(ctx, syncPendingKey, payload).Err()
}

// Dequeue blocks up to timeout for the next pending job. A nil payload with
// a nil error means the queue stayed empty.
func (SyncQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	client := RedisClient()
	defer client.Close()

	result, err := client.BRPop(ctx, timeout, syncPendingKey).Result()
	if errors.Is(err, redisclient.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// BRPop returns [key, value]
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

// Park moves a job that exhausted its attempts onto the dead-letter list so
// it stays visible for manual replay.
func (SyncQueue) Park(ctx context.Context, payload []byte) error {
	client := RedisClient()
	defer client.Close()

	return client.LPush(ctx, syncDeadKey, payload).Err()
}
