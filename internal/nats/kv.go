package nats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"reacji/internal/core"
)

// KV implements core.KeyValueStore on a JetStream key-value bucket, mapping
// JetStream sentinels onto the core ones.
type KV struct {
	kv jetstream.KeyValue
}

func (c *KV) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := c.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}

	return entry.Value(), nil
}

func (c *KV) Put(ctx context.Context, key string, value []byte) error {
	_, err := c.kv.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}
	return nil
}

// Create inserts key only if it does not exist yet. JetStream guarantees the
// atomicity, so racing writers admit exactly one winner.
func (c *KV) Create(ctx context.Context, key string, value []byte) error {
	_, err := c.kv.Create(ctx, key, value)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return core.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create key %s: %w", key, err)
	}
	return nil
}

func (c *KV) Delete(ctx context.Context, key string) error {
	return c.kv.Delete(ctx, key)
}
