// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store implements the key-value Storage Adapter on top of Redis strings.
//
// Values are written without TTL: the catalog and the cart must outlive restarts.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed key-value store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

/*
Get retrieves the value stored under key.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - string: Stored value
  - bool: false when the key is absent (redis.Nil)
  - error: Connectivity errors
*/
func (store *Store) Get(context context.Context, key string) (string, bool, error) {

	value, err := store.client.Get(context, key).Result()

	// Absence is a normal outcome, not a failure
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis_kv_get_failed: %w", err)
	}

	return value, true, nil
}

/*
Set replaces the value stored under key.

Parameters:
  - context: context.Context
  - key: string
  - value: string

Returns:
  - error: Storage failures
*/
func (store *Store) Set(context context.Context, key, value string) error {

	// Zero expiration keeps the key until it is overwritten
	if err := store.client.Set(context, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis_kv_set_failed: %w", err)
	}

	return nil
}

// Ping verifies the underlying client for the readiness probe.
func (store *Store) Ping(context context.Context) error {
	return Ping(context, store.client)
}
