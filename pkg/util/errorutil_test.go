package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)

	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewCapacityExceeded("advertisement slots are full", nil)

	domainErr := ToDomainError(original)

	assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")

	domainErr := ToDomainError(cause)

	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.ErrorIs(t, domainErr, cause)
}

func TestInvalidStateCarriesConflictStatus(t *testing.T) {
	err := NewInvalidState("rejected listing is locked for content edits", map[string]any{"id": "l1"})

	domainErr := ToDomainError(err)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}
