// Package storage persists whole collections as string-keyed blobs. Every
// write replaces the previous value; there is no versioning or merging.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the persisted collections.
const (
	PostsKey  = "communityPosts"
	OrdersKey = "marketplaceOrders"
)

var ErrMalformed = errors.New("malformed blob")

// KV is a last-writer-wins blob store.
type KV interface {
	// Get returns found=false without error when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

// LoadJSON reads key and decodes it into a T. found is false when the key is
// absent or holds an empty value.
func LoadJSON[T any](ctx context.Context, kv KV, key string) (value T, found bool, err error) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil || !found || len(raw) == 0 {
		return value, false, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return value, true, nil
}

// SaveJSON encodes value and writes it under key.
func SaveJSON(ctx context.Context, kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", key, err)
	}
	return kv.Set(ctx, key, raw)
}
