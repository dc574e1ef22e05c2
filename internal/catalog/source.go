// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
)

// # Catalog Source

// Source provides the initial catalog when nothing has been persisted yet.
type Source interface {

	/*
		FetchInitialCatalog returns the raw records of the seed catalog.

		Returns:
		  - []RawBook: Records in source order, not yet normalized
		  - error: Any failure; the caller treats it as "no seed available"
	*/
	FetchInitialCatalog(ctx context.Context) ([]RawBook, error)
}

// SourceFunc adapts a plain function to the [Source] interface.
type SourceFunc func(ctx context.Context) ([]RawBook, error)

// FetchInitialCatalog calls fn.
func (fn SourceFunc) FetchInitialCatalog(ctx context.Context) ([]RawBook, error) {
	return fn(ctx)
}

// # File Source

// FileSource reads the seed catalog from a JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a [FileSource] reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (source *FileSource) FetchInitialCatalog(context context.Context) ([]RawBook, error) {
	if err := context.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(source.path)
	if err != nil {
		return nil, fmt.Errorf("catalog_source_read_failed: %w", err)
	}

	var records []RawBook
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("catalog_source_decode_failed: %s: %w", source.path, err)
	}

	return records, nil
}

// # HTTP Source

// HTTPSource fetches the seed catalog with a single GET request.
//
// There is no retry and no client-side timeout: the caller's context is the
// only bound on the request.
type HTTPSource struct {
	httpClient *http.Client
	url        string
}

// NewHTTPSource creates an [HTTPSource]. A nil client falls back to [http.DefaultClient].
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{httpClient: client, url: url}
}

func (source *HTTPSource) FetchInitialCatalog(context context.Context) ([]RawBook, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, source.url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", constants.AppName)

	response, err := source.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("catalog_source_request_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog_source_unexpected_status: %d", response.StatusCode)
	}

	var records []RawBook
	if err := json.NewDecoder(response.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("catalog_source_decode_failed: %w", err)
	}

	return records, nil
}
