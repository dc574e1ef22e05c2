// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the storage backends and HTTP server via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

// Supported key-value storage backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Bookshelf server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// AllowedOrigins lists the storefront origins accepted outside development.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// StorageBackend selects the key-value store: memory, redis or postgres.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	// Key-Value store (Redis)
	RedisURL string `env:"REDIS_URL"`

	// Key-Value store (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Fixed storage keys. Overridable so several shelves can share one Redis.
	CatalogKey string `env:"CATALOG_KEY" envDefault:"bookstore_books"`
	CartKey    string `env:"CART_KEY"    envDefault:"bookstore_cart"`

	// Catalog Source. The URL wins when both are set.
	CatalogSourceURL  string `env:"CATALOG_SOURCE_URL"`
	CatalogSourceFile string `env:"CATALOG_SOURCE_FILE" envDefault:"./data/books.json"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate checks backend-specific requirements that struct tags cannot express.
func (c *Config) validate() error {
	validator := &validate.Validator{}

	validator.OneOf("STORAGE_BACKEND", c.StorageBackend, BackendMemory, BackendRedis, BackendPostgres)
	validator.Custom("REDIS_URL", c.StorageBackend == BackendRedis && c.RedisURL == "", "Required for the redis backend")
	validator.Custom("DATABASE_URL", c.StorageBackend == BackendPostgres && c.DatabaseURL == "", "Required for the postgres backend")
	validator.Required("CATALOG_KEY", c.CatalogKey).Required("CART_KEY", c.CartKey)
	validator.Custom("CART_KEY", c.CatalogKey == c.CartKey, "Must differ from CATALOG_KEY")
	validator.URL("CATALOG_SOURCE_URL", c.CatalogSourceURL)

	return validator.Err()
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowsOrigin reports whether a browser origin may call the API.
//
// Development accepts every origin.
func (c *Config) AllowsOrigin(origin string) bool {
	return c.IsDevelopment() || slices.Contains(c.AllowedOrigins, origin)
}

// UsesDefaultKeys reports whether the storage keys match the browser app's keys.
func (c *Config) UsesDefaultKeys() bool {
	return c.CatalogKey == constants.CatalogKey && c.CartKey == constants.CartKey
}
