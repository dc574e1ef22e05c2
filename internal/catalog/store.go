// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/storage"
)

// resourceBook is the resource name used in not-found errors.
const resourceBook = "Book"

// # Catalog Store

// Store owns the in-memory catalog and mirrors it to the key-value store.
//
// Every mutation writes the whole catalog before returning. If that write
// fails the in-memory catalog is left exactly as it was.
type Store struct {
	mu     sync.RWMutex
	books  []Book
	kv     storage.Store
	source Source
	key    string
	logger *slog.Logger
}

// NewStore creates an empty [Store]. Call [Store.Load] before serving reads.
func NewStore(kv storage.Store, source Source, key string, logger *slog.Logger) *Store {
	return &Store{
		books:  []Book{},
		kv:     kv,
		source: source,
		key:    key,
		logger: logger,
	}
}

/*
Load populates the catalog.

Resolution order:
 1. The persisted catalog under the store key, when present and decodable.
 2. The Catalog Source.
 3. An empty catalog, when the source fails.

Normalization runs once on whichever sequence wins. A source-path load is
not written back; the first mutation persists the catalog.

Returns:
  - error: [apperr.StorageError] when the backend itself cannot be read
*/
func (store *Store) Load(context context.Context) error {
	raw, found, err := storage.GetJSON[[]RawBook](context, store.kv, store.key)

	var decodeErr *storage.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		store.logger.Warn("catalog_persisted_unreadable", slog.String("key", store.key), slog.Any("error", err))
		found = false
	case err != nil:
		return apperr.StorageError("catalog_read", err)
	}

	origin := "storage"
	if !found {
		origin = "source"
		raw = store.fetchInitial(context)
	}

	books := Normalize(raw)

	store.mu.Lock()
	store.books = books
	store.mu.Unlock()

	store.logger.Info("catalog_loaded", slog.String("origin", origin), slog.Int("count", len(books)))
	return nil
}

// fetchInitial asks the source for the seed catalog. Failures are logged
// and degrade to an empty catalog.
func (store *Store) fetchInitial(context context.Context) []RawBook {
	if store.source == nil {
		return nil
	}

	records, err := store.source.FetchInitialCatalog(context)
	if err != nil {
		failure := apperr.SourceUnavailable(err)
		store.logger.Warn("catalog_source_unavailable",
			slog.String("code", failure.Code),
			slog.String("detail", failure.Message),
			slog.Any("error", failure.Cause),
		)
		return nil
	}

	return records
}

// # Reads

// FindByID returns the book with the given id.
func (store *Store) FindByID(id int) (Book, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	index := store.indexOf(id)
	if index < 0 {
		return Book{}, false
	}
	return store.books[index].clone(), true
}

// All returns a snapshot of the catalog in display order.
func (store *Store) All() []Book {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return cloneBooks(store.books)
}

// Recent returns at most n books from the front of the catalog, where
// newly created books land.
func (store *Store) Recent(n int) []Book {
	store.mu.RLock()
	defer store.mu.RUnlock()

	n = max(0, min(n, len(store.books)))
	return cloneBooks(store.books[:n])
}

// Len returns the number of books in the catalog.
func (store *Store) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return len(store.books)
}

// # Mutations

/*
Create adds a new book at the front of the catalog.

Description: The id is one greater than the largest existing id (1 for an
empty catalog). Rating starts at 0 and reviews empty.

Parameters:
  - context: context.Context
  - fields: Fields (title is required)

Returns:
  - Book: The created book
  - error: Validation or storage failures
*/
func (store *Store) Create(context context.Context, fields Fields) (Book, error) {
	fields = fields.trimmed()
	fields.Rating = nil

	if err := fields.validate(true); err != nil {
		return Book{}, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	book := Book{ID: store.nextID(), Reviews: []Review{}}
	fields.apply(&book)

	next := make([]Book, 0, len(store.books)+1)
	next = append(next, book)
	next = append(next, store.books...)

	if err := store.persist(context, next); err != nil {
		return Book{}, err
	}
	store.books = next

	store.logger.Info("book_created", slog.Int("book_id", book.ID), slog.String("title", book.Title))
	return book.clone(), nil
}

/*
Update merges the provided fields into an existing book.

Description: Fields left nil keep their current value. The id never changes.

Returns:
  - Book: The updated book
  - error: [apperr.NotFound], validation or storage failures
*/
func (store *Store) Update(context context.Context, id int, fields Fields) (Book, error) {
	fields = fields.trimmed()

	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(id)
	if index < 0 {
		return Book{}, apperr.NotFound(resourceBook)
	}

	if err := fields.validate(false); err != nil {
		return Book{}, err
	}

	updated := store.books[index].clone()
	fields.apply(&updated)

	next := slices.Clone(store.books)
	next[index] = updated

	if err := store.persist(context, next); err != nil {
		return Book{}, err
	}
	store.books = next

	store.logger.Info("book_updated", slog.Int("book_id", id))
	return updated.clone(), nil
}

// Delete removes the book with the given id. Deleting a missing id is a
// no-op that still rewrites the catalog.
func (store *Store) Delete(context context.Context, id int) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(store.books), func(book Book) bool {
		return book.ID == id
	})

	if err := store.persist(context, next); err != nil {
		return err
	}

	if len(next) != len(store.books) {
		store.logger.Warn("book_deleted", slog.Int("book_id", id))
	}
	store.books = next
	return nil
}

// # Internal helpers

// persist writes books under the store key. Callers hold the write lock and
// only swap in books after a nil return.
func (store *Store) persist(context context.Context, books []Book) error {
	if err := storage.SetJSON(context, store.kv, store.key, books); err != nil {
		store.logger.Error("catalog_write_failed", slog.String("key", store.key), slog.Any("error", err))
		return apperr.StorageError("catalog_write", err)
	}
	return nil
}

// nextID returns 1 + the largest id in the catalog, or 1 when empty.
func (store *Store) nextID() int {
	highest := 0
	for _, book := range store.books {
		highest = max(highest, book.ID)
	}
	return highest + 1
}

func (store *Store) indexOf(id int) int {
	return slices.IndexFunc(store.books, func(book Book) bool {
		return book.ID == id
	})
}

func cloneBooks(books []Book) []Book {
	out := make([]Book, len(books))
	for index, book := range books {
		out[index] = book.clone()
	}
	return out
}
