// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/bookshelf/internal/platform/redis"
)

func newStore(t *testing.T) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := redisstore.NewClient(context.Background(), "redis://"+server.Addr()+"/0", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.NewStore(client), server
}

/*
TestStore_GetSet verifies presence, absence and overwrite semantics.
*/
func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store, server := newStore(t)

	// 1. Absent key
	_, found, err := store.Get(ctx, "bookstore_cart")
	require.NoError(t, err)
	assert.False(t, found)

	// 2. Write and read back
	require.NoError(t, store.Set(ctx, "bookstore_cart", `[{"id":1,"qty":1}]`))
	value, found, err := store.Get(ctx, "bookstore_cart")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":1,"qty":1}]`, value)

	// 3. Overwrite replaces the whole value and sets no TTL
	require.NoError(t, store.Set(ctx, "bookstore_cart", `[]`))
	value, _, _ = store.Get(ctx, "bookstore_cart")
	assert.Equal(t, `[]`, value)
	assert.Zero(t, server.TTL("bookstore_cart"))

	assert.NoError(t, store.Ping(ctx))
}

/*
TestStore_ConnectionLost surfaces backend failures as errors.
*/
func TestStore_ConnectionLost(t *testing.T) {
	ctx := context.Background()
	store, server := newStore(t)

	server.Close()

	_, _, err := store.Get(ctx, "bookstore_books")
	assert.Error(t, err)
	assert.Error(t, store.Set(ctx, "bookstore_books", "[]"))
}

/*
TestNewClient_InvalidURL rejects malformed URLs before dialing.
*/
func TestNewClient_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := redisstore.NewClient(context.Background(), "not-a-url", logger)
	assert.Error(t, err)
}
