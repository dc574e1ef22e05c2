// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storagetest provides key-value stores for tests that need to
// simulate backend failures.
package storagetest

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/taibuivan/bookshelf/internal/storage"
)

// ErrUnavailable is returned by a [Flaky] store while a failure is switched on.
var ErrUnavailable = errors.New("storagetest: backend unavailable")

// Flaky is an in-memory store whose reads and writes can be made to fail.
type Flaky struct {
	*storage.Memory

	failReads  atomic.Bool
	failWrites atomic.Bool
	writes     atomic.Int64
}

// NewFlaky creates a healthy [Flaky] store.
func NewFlaky() *Flaky {
	return &Flaky{Memory: storage.NewMemory()}
}

// FailReads toggles read failures.
func (store *Flaky) FailReads(fail bool) { store.failReads.Store(fail) }

// FailWrites toggles write failures.
func (store *Flaky) FailWrites(fail bool) { store.failWrites.Store(fail) }

// Writes returns the number of successful writes so far.
func (store *Flaky) Writes() int { return int(store.writes.Load()) }

func (store *Flaky) Get(context context.Context, key string) (string, bool, error) {
	if store.failReads.Load() {
		return "", false, ErrUnavailable
	}
	return store.Memory.Get(context, key)
}

func (store *Flaky) Set(context context.Context, key, value string) error {
	if store.failWrites.Load() {
		return ErrUnavailable
	}
	if err := store.Memory.Set(context, key, value); err != nil {
		return err
	}
	store.writes.Add(1)
	return nil
}
