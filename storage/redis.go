package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis hash-free key namespace. Every key is
// written under prefix and tracked in an index set so Clear can wipe the
// namespace without a SCAN over the whole keyspace.
type Redis struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed store. prefix namespaces all keys; the
// empty string defaults to "ft".
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = "ft"
	}
	return &Redis{
		redis:  client,
		prefix: prefix,
	}
}

func (r *Redis) key(key string) string {
	return r.prefix + ":" + key
}

func (r *Redis) indexKey() string {
	return r.prefix + ":keys"
}

// Get describes the get operation and its observable behavior.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.redis.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v, nil
}

// Set writes the value and records the key in the index set in one
// transaction, so Clear always sees every live key.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(key), value, 0)
		pipe.SAdd(ctx, r.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete describes the delete operation and its observable behavior.
func (r *Redis) Delete(ctx context.Context, key string) error {
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(key))
		pipe.SRem(ctx, r.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Clear removes every tracked key plus the index set itself.
func (r *Redis) Clear(ctx context.Context) error {
	keys, err := r.redis.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			keys = nil
		} else {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	fullKeys := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		fullKeys = append(fullKeys, r.key(k))
	}
	fullKeys = append(fullKeys, r.indexKey())

	if err := r.redis.Del(ctx, fullKeys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
