package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"qbr-dash/internal/qbr"
)

// KeyPrefix namespaces summary keys in Redis.
const KeyPrefix = "qbr:summary:"

// Redis caches summaries as JSON strings with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

// DialRedis connects to addr and verifies the connection with a ping.
func DialRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis %s: %w", addr, err)
	}
	return NewRedis(client, ttl), nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]qbr.Summary, bool, error) {
	data, err := r.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}

	var rows []qbr.Summary
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, fmt.Errorf("unmarshaling %s: %w", key, err)
	}
	return rows, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, rows []qbr.Summary) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	return r.client.Set(ctx, KeyPrefix+key, data, r.ttl).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
