package repository

import (
	"context"
)

// KVStore is a durable map from string keys to serialized JSON blobs.
// Implementations must be safe for concurrent use.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
