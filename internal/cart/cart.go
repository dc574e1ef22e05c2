// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cart implements the persistent shopping cart.

A cart is an ordered list of line items, at most one per book id, each with
a positive quantity. Book details are never copied into the cart: prices and
titles are resolved against the catalog at read time, and line items whose
book no longer exists are skipped.
*/
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/taibuivan/bookshelf/internal/catalog"
)

// LineItem is one cart entry.
type LineItem struct {
	ID  int `json:"id"`
	Qty int `json:"qty"`
}

// Catalog resolves book ids. [*catalog.Store] satisfies it.
type Catalog interface {
	FindByID(id int) (catalog.Book, bool)
}

// Line is a line item resolved against the catalog.
type Line struct {
	Book     catalog.Book    `json:"book"`
	Qty      int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Summary is the resolved cart as shown on the cart panel.
type Summary struct {
	Lines         []Line          `json:"lines"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}
