// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// kv_entries column and table identifiers.
const (
	tableKV     = "kv_entries"
	columnKey   = "key"
	columnValue = "value"
	columnTime  = "updated_at"
)

// Store implements the key-value Storage Adapter on a single PostgreSQL table.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new PostgreSQL-backed key-value store.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Get returns the value stored under key. pgx.ErrNoRows means absent.
func (store *Store) Get(context context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, columnValue, tableKV, columnKey)

	var value string
	err := store.db.QueryRow(context, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres_kv_get_failed: %w", err)
	}

	return value, true, nil
}

// Set upserts the value stored under key.
func (store *Store) Set(context context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()
	`,
		tableKV, columnKey, columnValue, columnTime,
		columnKey, columnValue, columnValue, columnTime,
	)

	if _, err := store.db.Exec(context, query, key, value); err != nil {
		return fmt.Errorf("postgres_kv_set_failed: %w", err)
	}

	return nil
}

// Ping verifies the pool for the readiness probe.
func (store *Store) Ping(context context.Context) error {
	return Ping(context, store.db)
}
