package ingestinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest"
	"github.com/redis/go-redis/v9"
)

// RedisQueue implements BatchQueue using Redis lists, with a sorted set for
// delayed retries.
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based batch queue
func NewRedisQueue(client *redis.Client, queueName string) ingest.BatchQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a batch to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, batch *ingest.QueuedBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch %s: %w", batch.BatchID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue batch %s: %w", batch.BatchID, err)
	}

	return nil
}

// Dequeue gets a batch from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue batch: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// EnqueueDelayed schedules a batch for later processing (for retries)
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, batch *ingest.QueuedBatch, delay time.Duration) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal delayed batch %s: %w", batch.BatchID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	delayedQueue := q.queueName + ":delayed"

	if err := q.client.ZAdd(ctx, delayedQueue, redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed batch %s: %w", batch.BatchID, err)
	}

	return nil
}

// MoveDelayedToReady moves delayed batches that are due onto the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	delayedQueue := q.queueName + ":delayed"
	now := float64(time.Now().Unix())

	batches, err := q.client.ZRangeByScore(ctx, delayedQueue, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed batches: %w", err)
	}

	if len(batches) == 0 {
		return 0, nil
	}

	// Use pipeline for atomic operations
	pipe := q.client.Pipeline()
	for _, batch := range batches {
		pipe.LPush(ctx, q.queueName, batch)
		pipe.ZRem(ctx, delayedQueue, batch)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed batches to ready: %w", err)
	}

	return len(batches), nil
}

// GetQueueSize returns the number of batches in the queue
func (q *RedisQueue) GetQueueSize(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}
