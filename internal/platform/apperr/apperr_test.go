// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
)

/*
TestConstructors_StatusAndCode verifies the code/status pairing of every constructor.
*/
func TestConstructors_StatusAndCode(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Book"), apperr.CodeNotFound, http.StatusNotFound},
		{"validation", apperr.ValidationError("bad"), apperr.CodeValidation, http.StatusBadRequest},
		{"storage", apperr.StorageError("catalog_write", cause), apperr.CodeStorage, http.StatusServiceUnavailable},
		{"source", apperr.SourceUnavailable(cause), apperr.CodeSourceUnavailable, http.StatusBadGateway},
		{"internal", apperr.Internal(cause), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestAs_TraversesWrappedChain checks extraction through fmt.Errorf wrapping.
*/
func TestAs_TraversesWrappedChain(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("saving cart: %w", apperr.StorageError("cart_write", cause))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeStorage, ae.Code)
	assert.True(t, errors.Is(wrapped, cause))
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeStorage))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeStorage))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestNotFound_Message checks the client-safe message format.
*/
func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "Book not found", apperr.NotFound("Book").Error())
}
