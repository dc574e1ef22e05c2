// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/storage"
	"github.com/taibuivan/bookshelf/pkg/slice"
)

// # Cart Store

// Store owns the cart line items and mirrors them to the key-value store.
//
// Every call that changes the cart writes the whole cart before returning.
// A failed write leaves the in-memory cart unchanged.
type Store struct {
	mu     sync.RWMutex
	items  []LineItem
	kv     storage.Store
	key    string
	logger *slog.Logger
}

// NewStore creates an empty cart. Call [Store.Load] to restore a persisted one.
func NewStore(kv storage.Store, key string, logger *slog.Logger) *Store {
	return &Store{
		items:  []LineItem{},
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

/*
Load restores the persisted cart.

Description: An absent key is an empty cart. A stored value that cannot be
decoded is discarded with a warning. Line items with a non-positive quantity
are dropped and duplicate ids are merged, so the loaded cart always holds
the line item invariants.

Returns:
  - error: [apperr.StorageError] when the backend cannot be read
*/
func (store *Store) Load(context context.Context) error {
	items, _, err := storage.GetJSON[[]LineItem](context, store.kv, store.key)

	var decodeErr *storage.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		store.logger.Warn("cart_persisted_unreadable", slog.String("key", store.key), slog.Any("error", err))
		items = nil
	case err != nil:
		return apperr.StorageError("cart_read", err)
	}

	sanitized := sanitize(items)

	store.mu.Lock()
	store.items = sanitized
	store.mu.Unlock()

	store.logger.Info("cart_loaded", slog.Int("lines", len(sanitized)), slog.Int("quantity", totalQuantity(sanitized)))
	return nil
}

// # Mutations

/*
Add puts one copy of a book in the cart.

Description: Increments the line item for bookID, or appends {bookID, 1}
when there is none. The book does not have to exist in the catalog.

Returns:
  - int: The new total quantity across all line items
  - error: [apperr.StorageError] on write failure
*/
func (store *Store) Add(context context.Context, bookID int) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	next := slices.Clone(store.items)
	if index := indexOf(next, bookID); index >= 0 {
		next[index].Qty++
	} else {
		next = append(next, LineItem{ID: bookID, Qty: 1})
	}

	if err := store.commit(context, next); err != nil {
		return 0, err
	}

	total := totalQuantity(next)
	store.logger.Info("cart_item_added", slog.Int("book_id", bookID), slog.Int("total_quantity", total))
	return total, nil
}

// Increment adds one to an existing line item. Unknown ids change nothing,
// but the cart is still written.
func (store *Store) Increment(context context.Context, bookID int) error {
	return store.adjust(context, bookID, 1)
}

// Decrement removes one from an existing line item and drops the line item
// when its quantity reaches zero. Unknown ids change nothing, but the cart
// is still written.
func (store *Store) Decrement(context context.Context, bookID int) error {
	return store.adjust(context, bookID, -1)
}

// Remove deletes the line item for bookID. Removing an absent id is a no-op.
func (store *Store) Remove(context context.Context, bookID int) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(store.items), func(item LineItem) bool {
		return item.ID == bookID
	})

	if err := store.commit(context, next); err != nil {
		return err
	}

	store.logger.Info("cart_item_removed", slog.Int("book_id", bookID))
	return nil
}

// Clear empties the cart. Asking the shopper for confirmation is the
// caller's job.
func (store *Store) Clear(context context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.commit(context, []LineItem{}); err != nil {
		return err
	}

	store.logger.Warn("cart_cleared")
	return nil
}

// # Reads

// Items returns a copy of the line items in cart order.
func (store *Store) Items() []LineItem {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return slices.Clone(store.items)
}

// TotalQuantity returns the sum of all quantities, 0 for an empty cart.
func (store *Store) TotalQuantity() int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return totalQuantity(store.items)
}

// TotalPrice sums price * qty over line items whose book still resolves in
// books. Dangling ids are skipped.
func (store *Store) TotalPrice(books Catalog) decimal.Decimal {
	return store.Lines(books).TotalPrice
}

/*
Lines resolves every line item against the catalog.

Returns:
  - Summary: Resolved lines (dangling ids skipped), the total quantity of
    all line items and the total price of the resolved ones
*/
func (store *Store) Lines(books Catalog) Summary {
	items := store.Items()

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		book, found := books.FindByID(item.ID)
		if !found {
			store.logger.Debug("cart_item_dangling", slog.Int("book_id", item.ID))
			continue
		}
		lines = append(lines, Line{
			Book:     book,
			Qty:      item.Qty,
			Subtotal: book.Price.Mul(decimal.NewFromInt(int64(item.Qty))),
		})
	}

	total := slice.Reduce(lines, decimal.Zero, func(sum decimal.Decimal, line Line) decimal.Decimal {
		return sum.Add(line.Subtotal)
	})

	return Summary{
		Lines:         lines,
		TotalQuantity: totalQuantity(items),
		TotalPrice:    total,
	}
}

// # Internal helpers

// adjust changes the quantity of an existing line item by delta, removing
// it when the quantity drops to zero or below.
func (store *Store) adjust(context context.Context, bookID, delta int) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	next := slices.Clone(store.items)
	if index := indexOf(next, bookID); index >= 0 {
		next[index].Qty += delta
		if next[index].Qty <= 0 {
			next = slices.Delete(next, index, index+1)
		}
	}

	if err := store.commit(context, next); err != nil {
		return err
	}

	store.logger.Debug("cart_item_adjusted", slog.Int("book_id", bookID), slog.Int("delta", delta))
	return nil
}

// commit persists next and, on success, makes it the current cart. Callers
// hold the write lock.
func (store *Store) commit(context context.Context, next []LineItem) error {
	if err := storage.SetJSON(context, store.kv, store.key, next); err != nil {
		store.logger.Error("cart_write_failed", slog.String("key", store.key), slog.Any("error", err))
		return apperr.StorageError("cart_write", err)
	}
	store.items = next
	return nil
}

// sanitize drops non-positive quantities and merges duplicate ids, keeping
// the position of each id's first appearance.
func sanitize(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Qty <= 0 {
			continue
		}
		if index := indexOf(out, item.ID); index >= 0 {
			out[index].Qty += item.Qty
			continue
		}
		out = append(out, item)
	}
	return out
}

func indexOf(items []LineItem, bookID int) int {
	return slices.IndexFunc(items, func(item LineItem) bool {
		return item.ID == bookID
	})
}

func totalQuantity(items []LineItem) int {
	return slice.Reduce(items, 0, func(sum int, item LineItem) int {
		return sum + item.Qty
	})
}
