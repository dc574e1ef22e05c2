// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart_test

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/cart"
	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/storage"
	"github.com/taibuivan/bookshelf/internal/storage/storagetest"
)

const cartKey = "bookstore_cart"

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// shelf is a fixed catalog for price resolution.
type shelf map[int]catalog.Book

func (s shelf) FindByID(id int) (catalog.Book, bool) {
	book, found := s[id]
	return book, found
}

func priced(id int, price string) catalog.Book {
	return catalog.Book{ID: id, Title: "Book", Price: decimal.RequireFromString(price), Reviews: []catalog.Review{}}
}

func newCart(t *testing.T, kv storage.Store) *cart.Store {
	t.Helper()

	store := cart.NewStore(kv, cartKey, discard)
	require.NoError(t, store.Load(context.Background()))
	return store
}

/*
TestCart_AddTwice merges repeated adds into one line item.
*/
func TestCart_AddTwice(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := newCart(t, kv)

	total, err := store.Add(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	total, err = store.Add(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	assert.Equal(t, []cart.LineItem{{ID: 5, Qty: 2}}, store.Items())
	assert.Equal(t, 2, store.TotalQuantity())

	raw, found, err := kv.Get(ctx, cartKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[{"id":5,"qty":2}]`, raw)
}

/*
TestCart_DecrementToZero removes the line item.
*/
func TestCart_DecrementToZero(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, cartKey, `[{"id":7,"qty":1}]`))
	store := newCart(t, kv)

	require.NoError(t, store.Decrement(ctx, 7))

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.TotalQuantity())

	raw, _, err := kv.Get(ctx, cartKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, raw)
}

/*
TestCart_AdjustUnknownID changes nothing but still writes.
*/
func TestCart_AdjustUnknownID(t *testing.T) {
	ctx := context.Background()
	kv := storagetest.NewFlaky()
	store := newCart(t, kv)

	_, err := store.Add(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, store.Increment(ctx, 99))
	require.NoError(t, store.Decrement(ctx, 99))
	require.NoError(t, store.Remove(ctx, 99))

	assert.Equal(t, []cart.LineItem{{ID: 1, Qty: 1}}, store.Items())
	assert.Equal(t, 4, kv.Writes())
}

/*
TestCart_IncrementRemoveClear walks the rest of the mutation surface.
*/
func TestCart_IncrementRemoveClear(t *testing.T) {
	ctx := context.Background()
	store := newCart(t, storage.NewMemory())

	_, err := store.Add(ctx, 1)
	require.NoError(t, err)
	_, err = store.Add(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, store.Increment(ctx, 2))

	assert.Equal(t, []cart.LineItem{{ID: 1, Qty: 1}, {ID: 2, Qty: 2}}, store.Items())

	require.NoError(t, store.Remove(ctx, 1))
	require.NoError(t, store.Remove(ctx, 1))
	assert.Equal(t, []cart.LineItem{{ID: 2, Qty: 2}}, store.Items())

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.Items())
	assert.Zero(t, store.TotalQuantity())
}

/*
TestCart_QuantityConservation replays a random operation sequence against a
simple model of the cart.
*/
func TestCart_QuantityConservation(t *testing.T) {
	ctx := context.Background()
	store := newCart(t, storage.NewMemory())
	random := rand.New(rand.NewPCG(7, 11))

	model := map[int]int{}
	for range 500 {
		id := random.IntN(6)
		switch random.IntN(4) {
		case 0:
			total, err := store.Add(ctx, id)
			require.NoError(t, err)
			model[id]++
			expected := 0
			for _, qty := range model {
				expected += qty
			}
			require.Equal(t, expected, total)
		case 1:
			require.NoError(t, store.Increment(ctx, id))
			if model[id] > 0 {
				model[id]++
			}
		case 2:
			require.NoError(t, store.Decrement(ctx, id))
			if model[id] > 0 {
				model[id]--
			}
		case 3:
			require.NoError(t, store.Remove(ctx, id))
			model[id] = 0
		}

		expected := 0
		for _, qty := range model {
			expected += qty
		}
		require.Equal(t, expected, store.TotalQuantity())

		seen := map[int]bool{}
		for _, item := range store.Items() {
			require.Positive(t, item.Qty)
			require.False(t, seen[item.ID])
			seen[item.ID] = true
		}
	}
}

/*
TestCart_TotalPrice skips ids that no longer resolve.
*/
func TestCart_TotalPrice(t *testing.T) {
	ctx := context.Background()
	store := newCart(t, storage.NewMemory())
	books := shelf{1: priced(1, "10.50"), 2: priced(2, "3.25")}

	for _, id := range []int{1, 1, 2, 404} {
		_, err := store.Add(ctx, id)
		require.NoError(t, err)
	}

	assert.Equal(t, "24.25", store.TotalPrice(books).String())
	assert.Equal(t, 4, store.TotalQuantity())

	summary := store.Lines(books)
	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "21", summary.Lines[0].Subtotal.String())
	assert.Equal(t, 2, summary.Lines[0].Qty)
	assert.Equal(t, 4, summary.TotalQuantity)
	assert.Equal(t, "24.25", summary.TotalPrice.String())
}

/*
TestCart_TotalPrice_Empty is zero.
*/
func TestCart_TotalPrice_Empty(t *testing.T) {
	store := newCart(t, storage.NewMemory())

	assert.True(t, store.TotalPrice(shelf{}).IsZero())
	assert.Empty(t, store.Lines(shelf{}).Lines)
}

/*
TestCart_WriteFailure leaves the cart as it was.
*/
func TestCart_WriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := storagetest.NewFlaky()
	store := newCart(t, kv)

	_, err := store.Add(ctx, 3)
	require.NoError(t, err)
	kv.FailWrites(true)

	_, err = store.Add(ctx, 3)
	assert.True(t, apperr.HasCode(err, apperr.CodeStorage))
	assert.True(t, apperr.HasCode(store.Decrement(ctx, 3), apperr.CodeStorage))
	assert.True(t, apperr.HasCode(store.Remove(ctx, 3), apperr.CodeStorage))
	assert.True(t, apperr.HasCode(store.Clear(ctx), apperr.CodeStorage))

	assert.Equal(t, []cart.LineItem{{ID: 3, Qty: 1}}, store.Items())
}

/*
TestCart_Load covers restore, sanitizing and unreadable values.
*/
func TestCart_Load(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   []cart.LineItem
	}{
		{"valid", `[{"id":1,"qty":2},{"id":4,"qty":1}]`, []cart.LineItem{{ID: 1, Qty: 2}, {ID: 4, Qty: 1}}},
		{"drops_non_positive", `[{"id":1,"qty":0},{"id":2,"qty":-1},{"id":3,"qty":1}]`, []cart.LineItem{{ID: 3, Qty: 1}}},
		{"merges_duplicates", `[{"id":1,"qty":1},{"id":2,"qty":1},{"id":1,"qty":2}]`, []cart.LineItem{{ID: 1, Qty: 3}, {ID: 2, Qty: 1}}},
		{"unreadable", `not json`, []cart.LineItem{}},
		{"null", `null`, []cart.LineItem{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			require.NoError(t, kv.Set(context.Background(), cartKey, tt.stored))

			assert.Equal(t, tt.want, newCart(t, kv).Items())
		})
	}
}

/*
TestCart_Load_BackendFailure surfaces a StorageError.
*/
func TestCart_Load_BackendFailure(t *testing.T) {
	kv := storagetest.NewFlaky()
	kv.FailReads(true)

	err := cart.NewStore(kv, cartKey, discard).Load(context.Background())

	assert.True(t, apperr.HasCode(err, apperr.CodeStorage))
}

/*
TestCart_ResolvesAgainstCatalogStore uses the real catalog store as resolver.
*/
func TestCart_ResolvesAgainstCatalogStore(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, "bookstore_books", `[{"id":1,"title":"A","price":"2.50"}]`))

	books := catalog.NewStore(kv, nil, "bookstore_books", discard)
	require.NoError(t, books.Load(ctx))

	store := newCart(t, kv)
	_, err := store.Add(ctx, 1)
	require.NoError(t, err)
	_, err = store.Add(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "5", store.TotalPrice(books).String())

	require.NoError(t, books.Delete(ctx, 1))
	assert.True(t, store.TotalPrice(books).IsZero())
	assert.Equal(t, 2, store.TotalQuantity())
}
