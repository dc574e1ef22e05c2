// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog owns the book collection: its record types, the ingest
normalization step, the initial Catalog Source and the write-through
Catalog Store.

Ingest:

	Catalog Source / persisted JSON -> []RawBook -> Normalize -> []Book

Every loose shape (missing id, string price, absent reviews) is resolved in
[Normalize]. Downstream code only ever sees a fully-typed [Book].
*/
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/pkg/pointer"
)

// # Records

// Review is a single reader review attached to a book.
type Review struct {
	Author string  `json:"author,omitempty"`
	Text   string  `json:"text,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}

// Book is a normalized catalog record.
//
// ID is assigned once (at ingest or creation) and never changes afterwards.
type Book struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Genre       string          `json:"genre"`
	Price       decimal.Decimal `json:"price"`
	Cover       string          `json:"cover,omitempty"`
	Description string          `json:"description,omitempty"`
	Rating      float64         `json:"rating"`
	Reviews     []Review        `json:"reviews"`
}

// clone returns a copy that shares no slices with b.
func (b Book) clone() Book {
	b.Reviews = append(make([]Review, 0, len(b.Reviews)), b.Reviews...)
	return b
}

// RawBook is the ingest shape of a book. Every field may be missing.
//
// Price accepts both a JSON number and a numeric string; the parse happens
// here, once, through [decimal.Decimal.UnmarshalJSON].
type RawBook struct {
	ID          *int             `json:"id"`
	Title       string           `json:"title"`
	Author      string           `json:"author"`
	Genre       string           `json:"genre"`
	Price       *decimal.Decimal `json:"price"`
	Cover       string           `json:"cover"`
	Description string           `json:"description"`
	Rating      *float64         `json:"rating"`
	Reviews     []Review         `json:"reviews"`
}

// # Normalization

// Normalize converts raw records into books, applying ingest defaults once:
//
//   - missing id      -> position + 1
//   - missing rating  -> 0
//   - missing reviews -> empty sequence
//
// Present values are kept as-is, so normalizing an already-normalized
// catalog changes nothing. Negative prices and out-of-range ratings are
// clamped into their domains.
func Normalize(raw []RawBook) []Book {
	books := make([]Book, 0, len(raw))

	for index, record := range raw {
		book := Book{
			ID:          pointer.Fallback(record.ID, index+1),
			Title:       record.Title,
			Author:      record.Author,
			Genre:       record.Genre,
			Price:       decimal.Zero,
			Cover:       record.Cover,
			Description: record.Description,
			Reviews:     []Review{},
		}

		if record.Price != nil && record.Price.IsPositive() {
			book.Price = *record.Price
		}
		if record.Rating != nil {
			book.Rating = clampRating(*record.Rating)
		}
		if record.Reviews != nil {
			book.Reviews = append(book.Reviews, record.Reviews...)
		}

		books = append(books, book)
	}

	return books
}

// clampRating forces a rating into [0, MaxRating].
func clampRating(rating float64) float64 {
	switch {
	case rating < 0:
		return 0
	case rating > constants.MaxRating:
		return constants.MaxRating
	default:
		return rating
	}
}
