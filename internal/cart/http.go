// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
)

// confirmParam must be true on DELETE /cart; emptying the cart is never implicit.
const confirmParam = "confirm"

// Handler exposes the cart over HTTP.
type Handler struct {
	store *Store
	books Catalog
}

func NewHandler(store *Store, books Catalog) *Handler {
	return &Handler{store: store, books: books}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/cart", func(cartRoute chi.Router) {
		cartRoute.Get("/", handler.getCart)
		cartRoute.Delete("/", handler.clearCart)

		cartRoute.Post("/items/{id}", handler.addItem)
		cartRoute.Post("/items/{id}/increment", handler.incrementItem)
		cartRoute.Post("/items/{id}/decrement", handler.decrementItem)
		cartRoute.Delete("/items/{id}", handler.removeItem)
	})
}

// getCart returns the resolved lines and totals.
func (handler *Handler) getCart(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.Lines(handler.books))
}

// addItem returns the new total quantity, which the storefront shows as the cart badge.
func (handler *Handler) addItem(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	total, err := handler.store.Add(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"total_quantity": total})
}

func (handler *Handler) incrementItem(writer http.ResponseWriter, request *http.Request) {
	handler.mutate(writer, request, handler.store.Increment)
}

func (handler *Handler) decrementItem(writer http.ResponseWriter, request *http.Request) {
	handler.mutate(writer, request, handler.store.Decrement)
}

func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	handler.mutate(writer, request, handler.store.Remove)
}

func (handler *Handler) clearCart(writer http.ResponseWriter, request *http.Request) {
	if !requestutil.Flag(request, confirmParam) {
		respond.Error(writer, request, apperr.ValidationError("Clearing the cart requires confirmation",
			apperr.FieldError{Field: confirmParam, Message: "Must be true"},
		))
		return
	}

	if err := handler.store.Clear(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.store.Lines(handler.books))
}

// mutate runs a per-item operation and answers with the refreshed cart.
func (handler *Handler) mutate(writer http.ResponseWriter, request *http.Request, operation func(context.Context, int) error) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := operation(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.store.Lines(handler.books))
}
