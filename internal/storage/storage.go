// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage defines the key-value Storage Adapter shared by the catalog
and cart stores.

The contract mirrors a browser's local storage: string keys, string values,
and a value is either present or absent. Backends live in the platform layer
(Redis, PostgreSQL) plus the in-process [Memory] store defined here.

Typed access goes through [GetJSON] and [SetJSON], which keep JSON encoding
at this single boundary.

Ownership:

  - Each fixed key has exactly one writer (catalog key: catalog store, cart key: cart store).
  - Writes are whole-value replacements; there are no partial updates.
*/
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// # Contract

// Store is the key-value Storage Adapter.
type Store interface {

	/*
		Get returns the value stored under key.

		Returns:
		  - string: The stored value (empty when absent)
		  - bool: Whether the key is present
		  - error: Backend failures only, absence is not an error
	*/
	Get(ctx context.Context, key string) (string, bool, error)

	/*
		Set replaces the value stored under key.

		Returns:
		  - error: Backend write failures
	*/
	Set(ctx context.Context, key, value string) error
}

// # Typed Access

// GetJSON reads key and decodes it into a value of type T.
//
// found is false when the key is absent. A present but undecodable value is
// reported through err so the caller can decide whether to fall back.
func GetJSON[T any](ctx context.Context, store Store, key string) (value T, found bool, err error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil || !found {
		return value, found, err
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, true, &DecodeError{Key: key, Err: err}
	}

	return value, true, nil
}

// SetJSON encodes value and writes it under key.
func SetJSON[T any](ctx context.Context, store Store, key string, value T) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	return store.Set(ctx, key, string(encoded))
}

// DecodeError reports a stored value that is not valid JSON for the target type.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("storage: decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
