// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
	"github.com/taibuivan/bookshelf/pkg/pointer"
)

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldGenre       = "genre"
	FieldPrice       = "price"
	FieldCover       = "cover"
	FieldDescription = "description"
	FieldRating      = "rating"
)

const (
	maxTitleLen       = 300
	maxNameLen        = 200
	maxDescriptionLen = 5000
)

// Fields carries the editable attributes of a book. A nil pointer means
// "not provided". There is no ID field: ids are never client-assigned.
type Fields struct {
	Title       *string          `json:"title"`
	Author      *string          `json:"author"`
	Genre       *string          `json:"genre"`
	Price       *decimal.Decimal `json:"price"`
	Cover       *string          `json:"cover"`
	Description *string          `json:"description"`
	Rating      *float64         `json:"rating"`
}

// trimmed returns a copy of fields with every provided string trimmed.
func (fields Fields) trimmed() Fields {
	for _, value := range []**string{&fields.Title, &fields.Author, &fields.Genre, &fields.Cover, &fields.Description} {
		if *value != nil {
			clean := strings.TrimSpace(**value)
			*value = &clean
		}
	}
	return fields
}

// validate checks the provided fields. requireTitle is set on creation,
// where a title must be present and not blank.
func (fields Fields) validate(requireTitle bool) error {
	validator := &validate.Validator{}

	if requireTitle || fields.Title != nil {
		title := pointer.Val(fields.Title)
		validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, maxTitleLen)
	}
	if fields.Author != nil {
		validator.MaxLen(FieldAuthor, *fields.Author, maxNameLen)
	}
	if fields.Genre != nil {
		validator.MaxLen(FieldGenre, *fields.Genre, maxNameLen)
	}
	if fields.Description != nil {
		validator.MaxLen(FieldDescription, *fields.Description, maxDescriptionLen)
	}
	if fields.Price != nil {
		validator.Custom(FieldPrice, fields.Price.IsNegative(), "Must not be negative")
	}
	if fields.Rating != nil {
		validator.FloatRange(FieldRating, *fields.Rating, 0, constants.MaxRating)
	}

	return validator.Err()
}

// apply merges the provided fields into book. ID, reviews and anything
// not provided are left untouched.
func (fields Fields) apply(book *Book) {
	if fields.Title != nil {
		book.Title = *fields.Title
	}
	if fields.Author != nil {
		book.Author = *fields.Author
	}
	if fields.Genre != nil {
		book.Genre = *fields.Genre
	}
	if fields.Price != nil {
		book.Price = *fields.Price
	}
	if fields.Cover != nil {
		book.Cover = *fields.Cover
	}
	if fields.Description != nil {
		book.Description = *fields.Description
	}
	if fields.Rating != nil {
		book.Rating = *fields.Rating
	}
}
