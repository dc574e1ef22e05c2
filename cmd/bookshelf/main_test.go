// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/platform/config"
)

/*
TestNewSource_PrefersURL picks the HTTP source when a URL is configured.
*/
func TestNewSource_PrefersURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`[{"title":"Dune"}]`))
	}))
	defer server.Close()

	source := newSource(&config.Config{CatalogSourceURL: server.URL, CatalogSourceFile: "missing.json"})
	require.IsType(t, &catalog.HTTPSource{}, source)

	records, err := source.FetchInitialCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dune", records[0].Title)
}

/*
TestNewSource_ContextBoundsFetch stops the HTTP fetch when the startup context ends.
*/
func TestNewSource_ContextBoundsFetch(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-request.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSource(&config.Config{CatalogSourceURL: server.URL}).FetchInitialCatalog(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

/*
TestNewSource_FallsBackToFile uses the seed file when no URL is set.
*/
func TestNewSource_FallsBackToFile(t *testing.T) {
	source := newSource(&config.Config{CatalogSourceFile: "../../data/books.json"})
	require.IsType(t, &catalog.FileSource{}, source)

	records, err := source.FetchInitialCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 11)
}
