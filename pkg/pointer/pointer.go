// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer helps with the optional fields of ingest records and
partial updates, where nil means "not provided".

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Dereferences a pointer, the zero value if nil.
  - Fallback: Dereferences a pointer, a default if nil.
*/
package pointer

// To returns a pointer to v, e.g. pointer.To("Dune") for a Fields.Title.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value of T when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning fallback when p is nil. Ingest uses it
// for defaults such as a missing book id.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
