// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Catalog Browsing: page size, projection sizes and the genre sentinel.
  - Storage Keys: the two fixed keys of the key-value store.
  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bookshelf"
	AppVersion = "0.1.0-dev"
)

// # Catalog Browsing

const (
	// PageSize is the fixed number of books per page of the browse grid.
	PageSize = 8

	// FeaturedLimit is the size of the featured row.
	FeaturedLimit = 6

	// PopularLimit is the size of the popular sidebar list.
	PopularLimit = 5

	// TopAuthorsLimit is the size of the top authors list.
	TopAuthorsLimit = 8

	// ManageListLimit is the number of books shown in the manage editor list.
	ManageListLimit = 50

	// GenreAll is the facet sentinel meaning "no genre restriction".
	GenreAll = "All"

	// MaxRating is the upper bound of a book rating.
	MaxRating = 5.0
)

// # Storage Keys

const (
	// CatalogKey holds the JSON-encoded catalog.
	CatalogKey = "bookstore_books"

	// CartKey holds the JSON-encoded cart line items.
	CartKey = "bookstore_cart"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldStatus = "status"
)
