package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]string{"Please provide student ID", "Please provide a valid email"})

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Len(t, domainErr.Messages, 2)
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("Request")

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "Request not found", domainErr.Message)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("passes through an existing domain error", func(t *testing.T) {
		original := NewUnauthorized("Invalid credentials")
		converted := ToDomainError(original)
		assert.Equal(t, "UNAUTHORIZED", converted.Code)
		assert.Equal(t, "Invalid credentials", converted.Message)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		converted := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, "NOT_FOUND", converted.Code)
		assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
	})

	t.Run("wraps unknown errors as server errors", func(t *testing.T) {
		cause := errors.New("connection reset")
		converted := ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", converted.Code)
		assert.Equal(t, "Server Error", converted.Message)
		assert.ErrorIs(t, converted, cause)
	})
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}
