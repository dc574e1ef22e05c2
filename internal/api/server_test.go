// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/api"
	"github.com/taibuivan/bookshelf/internal/cart"
	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/platform/config"
	"github.com/taibuivan/bookshelf/internal/storage/storagetest"
	"github.com/taibuivan/bookshelf/internal/view"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

const seed = `[
	{"title": "Dune", "author": "Frank Herbert", "genre": "Sci-Fi", "price": "9.99", "rating": 4.6},
	{"title": "Emma", "author": "Jane Austen", "genre": "Classic", "price": "7.50", "rating": 4.1},
	{"title": "Persuasion", "author": "Jane Austen", "genre": "Classic", "price": "6.00", "rating": 4.3}
]`

type fixture struct {
	handler http.Handler
	kv      *storagetest.Flaky
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var records []catalog.RawBook
	require.NoError(t, json.Unmarshal([]byte(seed), &records))

	kv := storagetest.NewFlaky()
	books := catalog.NewStore(kv, catalog.SourceFunc(func(context.Context) ([]catalog.RawBook, error) {
		return records, nil
	}), "bookstore_books", discard)
	require.NoError(t, books.Load(ctx))

	carts := cart.NewStore(kv, "bookstore_cart", discard)
	require.NoError(t, carts.Load(ctx))

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Checks: []api.HealthCheck{{Name: "memory", Check: kv.Ping}},
	}, discard)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "test"}, discard, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(books),
		View:      view.NewHandler(books, view.NewEngine()),
		Cart:      cart.NewHandler(carts, books),
	})

	return &fixture{handler: server.Handler(), kv: kv}
}

// do sends a request and decodes the "data" member of the envelope into out.
func (f *fixture) do(t *testing.T, method, target, body string, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, request)

	if out != nil {
		envelope := struct {
			Data json.RawMessage `json:"data"`
		}{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope), recorder.Body.String())
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return recorder
}

/*
TestAPI_Health covers both probes.
*/
func TestAPI_Health(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/ready", "", nil).Code)
}

/*
TestAPI_ListBooks filters by genre and reports pagination metadata.
*/
func TestAPI_ListBooks(t *testing.T) {
	f := newFixture(t)

	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/books?genre=Classic&q=austen", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []catalog.Book `json:"data"`
		Meta struct {
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	require.Len(t, body.Data, 2)
	assert.Equal(t, "Emma", body.Data[0].Title)
	assert.Equal(t, 2, body.Meta.Total)
	assert.Equal(t, 1, body.Meta.TotalPages)
}

/*
TestAPI_ListBooks_HugePage answers an empty page for a page number at the int limit.
*/
func TestAPI_ListBooks_HugePage(t *testing.T) {
	f := newFixture(t)

	var books []catalog.Book
	recorder := f.do(t, http.MethodGet, "/api/v1/books?page=9223372036854775807", "", &books)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, books)
}

/*
TestAPI_Browse returns every projection and honours the author quick filter.
*/
func TestAPI_Browse(t *testing.T) {
	f := newFixture(t)

	var snapshot view.Snapshot
	f.do(t, http.MethodGet, "/api/v1/browse?author=Jane%20Austen&genre=Sci-Fi", "", &snapshot)

	assert.Equal(t, "All", snapshot.State.Genre)
	assert.Equal(t, 2, snapshot.Page.Meta.Total)
	assert.Equal(t, "Dune", snapshot.Featured[0].Title)
	assert.Equal(t, "Jane Austen", snapshot.TopAuthors[0].Name)
	assert.Equal(t, []string{"All", "Sci-Fi", "Classic"}, snapshot.Genres)
}

/*
TestAPI_BookLifecycle creates, reads, updates and deletes a book.
*/
func TestAPI_BookLifecycle(t *testing.T) {
	f := newFixture(t)

	var created catalog.Book
	recorder := f.do(t, http.MethodPost, "/api/v1/books", `{"title":"  Ubik ","author":"Philip K. Dick","price":"5.25"}`, &created)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "Ubik", created.Title)

	var recent []catalog.Book
	f.do(t, http.MethodGet, "/api/v1/books/recent?limit=1", "", &recent)
	require.Len(t, recent, 1)
	assert.Equal(t, 4, recent[0].ID)

	var updated catalog.Book
	recorder = f.do(t, http.MethodPatch, "/api/v1/books/4", `{"genre":"Sci-Fi"}`, &updated)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Sci-Fi", updated.Genre)
	assert.Equal(t, "Ubik", updated.Title)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/v1/books/4", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/books/4", "", nil).Code)
}

/*
TestAPI_BookErrors maps domain errors to status codes.
*/
func TestAPI_BookErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"blank_title", http.MethodPost, "/api/v1/books", `{"title":"   "}`, http.StatusBadRequest},
		{"bad_json", http.MethodPost, "/api/v1/books", `{"title":`, http.StatusBadRequest},
		{"update_missing", http.MethodPatch, "/api/v1/books/999", `{"title":"X"}`, http.StatusNotFound},
		{"non_numeric_id", http.MethodGet, "/api/v1/books/abc", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.do(t, tt.method, tt.target, tt.body, nil).Code)
		})
	}
}

/*
TestAPI_CartFlow adds, adjusts, resolves and clears the cart.
*/
func TestAPI_CartFlow(t *testing.T) {
	f := newFixture(t)

	var added map[string]int
	f.do(t, http.MethodPost, "/api/v1/cart/items/1", "", &added)
	f.do(t, http.MethodPost, "/api/v1/cart/items/1", "", &added)
	assert.Equal(t, 2, added["total_quantity"])

	var summary cart.Summary
	f.do(t, http.MethodPost, "/api/v1/cart/items/2/increment", "", &summary)
	assert.Equal(t, 2, summary.TotalQuantity)

	f.do(t, http.MethodPost, "/api/v1/cart/items/1/decrement", "", &summary)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, "9.99", summary.TotalPrice.String())

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, "/api/v1/cart", "", nil).Code)

	f.do(t, http.MethodDelete, "/api/v1/cart?confirm=true", "", &summary)
	assert.Empty(t, summary.Lines)
	assert.Zero(t, summary.TotalQuantity)
}

/*
TestAPI_StorageDown answers 503 and keeps the previous state.
*/
func TestAPI_StorageDown(t *testing.T) {
	f := newFixture(t)
	f.kv.FailWrites(true)

	recorder := f.do(t, http.MethodPost, "/api/v1/cart/items/1", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "STORAGE_ERROR")

	f.kv.FailWrites(false)
	var summary cart.Summary
	f.do(t, http.MethodGet, "/api/v1/cart", "", &summary)
	assert.Zero(t, summary.TotalQuantity)
}

/*
TestAPI_ReadinessDegraded reports 503 when a check fails.
*/
func TestAPI_ReadinessDegraded(t *testing.T) {
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Checks: []api.HealthCheck{{Name: "redis", Check: func(context.Context) error {
			return errors.New("connection refused")
		}}},
	}, discard)

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "degraded")
}
