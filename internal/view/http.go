// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
	"github.com/taibuivan/bookshelf/pkg/pagination"
)

// Catalog provides the snapshot the engine works on. [*catalog.Store] satisfies it.
type Catalog interface {
	All() []catalog.Book
}

// Handler serves the read-only storefront views.
type Handler struct {
	books  Catalog
	engine *Engine
}

func NewHandler(books Catalog, engine *Engine) *Handler {
	return &Handler{books: books, engine: engine}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/books", handler.listBooks)
	router.Get("/browse", handler.browse)
	router.Get("/genres", handler.listGenres)
}

// listBooks handles GET /books?q=&genre=&page= and returns one grid page.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	state := handler.stateFromRequest(request)

	filtered := handler.engine.Filter(handler.books.All(), state.Query, state.Genre)
	page := handler.engine.Paginate(filtered, state.Page)

	respond.Paginated(writer, page.Items, page.Meta)
}

// browse handles GET /browse and returns every projection at once.
// An author parameter applies the author quick filter.
func (handler *Handler) browse(writer http.ResponseWriter, request *http.Request) {
	state := handler.stateFromRequest(request)
	if author := request.URL.Query().Get("author"); author != "" {
		state = state.FilterByAuthor(author)
	}

	respond.OK(writer, handler.engine.Render(handler.books.All(), state))
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Genres(handler.books.All()))
}

// stateFromRequest builds the view state from q, genre and page. The page is
// applied last so an explicit page survives the query and genre reset.
func (handler *Handler) stateFromRequest(request *http.Request) State {
	query := request.URL.Query()
	params := pagination.FromRequest(request, handler.engine.PageSize())

	return NewState().
		WithQuery(query.Get("q")).
		WithGenre(query.Get("genre")).
		WithPage(params.Page)
}
