// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for page-based lists.
//
// # Overview
//
// It standardizes how a 1-indexed page is requested via query parameters,
// how a page window is cut from an in-memory sequence, and how the resulting
// metadata is delivered in the API response envelope.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/bookshelf/pkg/convert"
)

// DefaultPage is the starting page (1-indexed).
const DefaultPage = 1

// Params holds the requested page and the fixed page size.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the index of the first item on [Params.Page]. A page whose
// offset does not fit in an int saturates at [math.MaxInt].
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Window returns the [start, end) bounds of the page within a sequence of
// length total. A page past the end yields an empty window (start == end).
func (p Params) Window(total int) (start, end int) {
	start = min(p.Offset(), total)
	end = min(start+p.Limit, total)
	return start, end
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TotalPages returns ceil(total / limit), never less than 1.
//
// An empty list still has one (empty) page.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(page, limit, total int) Meta {
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}

// FromRequest parses the "page" query parameter from an HTTP request.
//
// # Clamping
//
// Invalid, zero or negative values fall back to [DefaultPage]. The page
// size is fixed by the caller and cannot be chosen by the client.
func FromRequest(r *http.Request, limit int) Params {
	page := parseIntParam(r, "page", DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	return convert.ToIntD(r.URL.Query().Get(key), defaultVal)
}
