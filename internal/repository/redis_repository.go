package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisRepository returns a KVStore that keeps every record as a plain
// string value under prefix+key.
func NewRedisRepository(rdb *redis.Client, prefix string) KVStore {
	return &redisRepository{rdb: rdb, prefix: prefix}
}

func (r *redisRepository) key(key string) string { return r.prefix + key }

func (r *redisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read key %q: %w", key, err)
	}
	return val, nil
}

func (r *redisRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("could not write key %q: %w", key, err)
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("could not delete key %q: %w", key, err)
	}
	return nil
}

func (r *redisRepository) Close() error {
	return r.rdb.Close()
}
