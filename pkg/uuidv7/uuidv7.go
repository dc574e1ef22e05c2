// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// Request correlation ids sort by creation time, so log lines of
// consecutive requests stay in order when grepped by id.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Fallback
//
// If the time-ordered generator fails (OS entropy unavailable), it falls
// back to a random UUIDv4 instead of failing the request.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	return uuid.Validate(s) == nil
}
