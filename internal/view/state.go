// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/pkg/pagination"
)

// State is the storefront's view state: what the shopper searched for, which
// genre tab is active and which grid page is shown.
//
// State is a value type. Every transition returns a new State.
type State struct {
	Query string `json:"query"`
	Genre string `json:"genre"`
	Page  int    `json:"page"`
}

// NewState returns the initial state: no query, every genre, first page.
func NewState() State {
	return State{Genre: constants.GenreAll, Page: pagination.DefaultPage}
}

// WithQuery sets the search text. A different query goes back to page 1.
func (state State) WithQuery(query string) State {
	if query != state.Query {
		state.Query = query
		state.Page = pagination.DefaultPage
	}
	return state
}

// WithGenre selects a genre tab. A different genre goes back to page 1.
func (state State) WithGenre(genre string) State {
	if genre == "" {
		genre = constants.GenreAll
	}
	if genre != state.Genre {
		state.Genre = genre
		state.Page = pagination.DefaultPage
	}
	return state
}

// WithPage moves to a grid page. Values below 1 are treated as 1; the upper
// bound is left to [State.ClampPage].
func (state State) WithPage(page int) State {
	state.Page = max(page, pagination.DefaultPage)
	return state
}

// FilterByAuthor is the author quick filter: every genre, the author's name
// as the query, first page.
func (state State) FilterByAuthor(author string) State {
	return State{Query: author, Genre: constants.GenreAll, Page: pagination.DefaultPage}
}

// ClearQuery drops the search text and returns to page 1.
func (state State) ClearQuery() State {
	state.Query = ""
	state.Page = pagination.DefaultPage
	return state
}

// ClampPage pulls the page into [1, totalPages].
func (state State) ClampPage(totalPages int) State {
	state.Page = min(max(state.Page, pagination.DefaultPage), max(totalPages, 1))
	return state
}
