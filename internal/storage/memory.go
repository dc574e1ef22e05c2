// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"sync"
)

// Memory is a process-local [Store]. Its contents die with the process.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

// Get implements [Store].
func (memory *Memory) Get(_ context.Context, key string) (string, bool, error) {
	memory.mu.RLock()
	defer memory.mu.RUnlock()

	value, found := memory.entries[key]
	return value, found, nil
}

// Set implements [Store].
func (memory *Memory) Set(_ context.Context, key, value string) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	memory.entries[key] = value
	return nil
}

// Ping always succeeds. It lets the readiness probe treat all backends alike.
func (memory *Memory) Ping(context.Context) error { return nil }
