// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view derives everything the storefront displays from a catalog
snapshot: the filtered and paginated grid, the Featured and Popular rails,
the top-authors panel and the genre list.

The [Engine] is stateless. It never mutates the books it is given and keeps
no cache, so every call reflects the snapshot passed in.

Pipeline:

	[]catalog.Book -> Filter(query, genre) -> Paginate(page) -> Page
	[]catalog.Book -> Featured / Popular / TopAuthors / Genres
*/
package view

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/pkg/pagination"
	"github.com/taibuivan/bookshelf/pkg/slice"
)

// # Results

// Page is one window of the filtered catalog.
type Page struct {
	Items []catalog.Book  `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// AuthorCount is one row of the top-authors panel.
type AuthorCount struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Count    int    `json:"count"`
}

// Snapshot bundles every projection for a single view state.
type Snapshot struct {
	State      State          `json:"state"`
	Page       Page           `json:"page"`
	Featured   []catalog.Book `json:"featured"`
	Popular    []catalog.Book `json:"popular"`
	TopAuthors []AuthorCount  `json:"top_authors"`
	Genres     []string       `json:"genres"`
}

// # Engine

// Engine computes view projections. The zero value is not usable, use [NewEngine].
type Engine struct {
	pageSize      int
	featuredLimit int
	popularLimit  int
	authorsLimit  int
}

// NewEngine creates an [Engine] with the storefront limits.
func NewEngine() *Engine {
	return &Engine{
		pageSize:      constants.PageSize,
		featuredLimit: constants.FeaturedLimit,
		popularLimit:  constants.PopularLimit,
		authorsLimit:  constants.TopAuthorsLimit,
	}
}

// PageSize returns the number of books per grid page.
func (engine *Engine) PageSize() int {
	return engine.pageSize
}

// Render computes the full snapshot for state over books.
func (engine *Engine) Render(books []catalog.Book, state State) Snapshot {
	filtered := engine.Filter(books, state.Query, state.Genre)

	return Snapshot{
		State:      state,
		Page:       engine.Paginate(filtered, state.Page),
		Featured:   engine.Featured(books),
		Popular:    engine.Popular(books),
		TopAuthors: engine.TopAuthors(books),
		Genres:     Genres(books),
	}
}

/*
Filter returns the books matching both the genre facet and the search query,
in catalog order.

Description: A book matches the genre when genre is [constants.GenreAll]
(or empty) or equals the book's genre exactly. It matches the query when the
query is empty or appears, ignoring case, in "title author description".

Parameters:
  - books: []catalog.Book (catalog snapshot)
  - query: string (raw search text, not trimmed)
  - genre: string

Returns:
  - []catalog.Book: Never nil
*/
func (engine *Engine) Filter(books []catalog.Book, query, genre string) []catalog.Book {
	anyGenre := genre == "" || genre == constants.GenreAll

	// A Caser is stateful, so each call folds with its own instance.
	folder := cases.Fold()
	needle := folder.String(query)

	matches := slice.Filter(books, func(book catalog.Book) bool {
		if !anyGenre && book.Genre != genre {
			return false
		}
		if needle == "" {
			return true
		}
		haystack := book.Title + " " + book.Author + " " + book.Description
		return strings.Contains(folder.String(haystack), needle)
	})

	if matches == nil {
		return []catalog.Book{}
	}
	return matches
}

// Paginate cuts the 1-based page out of filtered. Pages past the end are
// empty; the metadata still reports the real page count.
func (engine *Engine) Paginate(filtered []catalog.Book, page int) Page {
	params := pagination.Params{Page: max(page, pagination.DefaultPage), Limit: engine.pageSize}
	start, end := params.Window(len(filtered))

	return Page{
		Items: slices.Clone(filtered[start:end]),
		Meta:  pagination.NewMeta(params.Page, engine.pageSize, len(filtered)),
	}
}

// Featured returns the highest-rated books. Ties keep catalog order.
func (engine *Engine) Featured(books []catalog.Book) []catalog.Book {
	return topRated(books, engine.featuredLimit)
}

// Popular returns the highest-rated books for the side rail. Ties keep catalog order.
func (engine *Engine) Popular(books []catalog.Book) []catalog.Book {
	return topRated(books, engine.popularLimit)
}

// TopAuthors counts books per author and returns the most prolific ones.
//
// Names are compared exactly (case-sensitive). Ties keep the order in which
// each author first appears in the catalog.
func (engine *Engine) TopAuthors(books []catalog.Book) []AuthorCount {
	counts := make(map[string]int)
	var order []string

	for _, book := range books {
		if _, seen := counts[book.Author]; !seen {
			order = append(order, book.Author)
		}
		counts[book.Author]++
	}

	authors := slice.Map(order, func(name string) AuthorCount {
		return AuthorCount{Name: name, Initials: Initials(name), Count: counts[name]}
	})
	slices.SortStableFunc(authors, func(a, b AuthorCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return head(authors, engine.authorsLimit)
}

// # Free functions

// Genres returns [constants.GenreAll] followed by every distinct non-empty
// genre in first-seen order.
func Genres(books []catalog.Book) []string {
	genres := []string{constants.GenreAll}
	seen := make(map[string]bool)

	for _, book := range books {
		if book.Genre == "" || seen[book.Genre] {
			continue
		}
		seen[book.Genre] = true
		genres = append(genres, book.Genre)
	}

	return genres
}

// Initials returns up to two upper-cased leading letters of a name,
// e.g. "Ursula K. Le Guin" -> "UK".
func Initials(name string) string {
	var letters []rune
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		letters = append(letters, []rune(word)[0])
		if len(letters) == 2 {
			break
		}
	}
	return strings.ToUpper(string(letters))
}

func topRated(books []catalog.Book, limit int) []catalog.Book {
	ranked := slices.Clone(books)
	slices.SortStableFunc(ranked, func(a, b catalog.Book) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return head(ranked, limit)
}

// head returns at most the first n items, never nil.
func head[T any](items []T, n int) []T {
	n = max(0, min(n, len(items)))
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
