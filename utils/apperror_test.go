package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorKinds(t *testing.T) {
	cases := []struct {
		err    *AppError
		target error
		status int
	}{
		{NewValidationError("bad"), ErrValidation, 400},
		{NewNotFoundError("missing"), ErrNotFound, 404},
		{NewConflictError("taken"), ErrConflict, 400},
		{NewAuthError("nope"), ErrAuth, 401},
		{NewInternalError("boom", errors.New("db down")), ErrInternal, 500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status)
		assert.ErrorIs(t, tc.err, tc.target)

		wrapped := fmt.Errorf("context: %w", tc.err)
		got, ok := AsAppError(wrapped)
		assert.True(t, ok)
		assert.Equal(t, tc.err, got)
	}

	assert.NotErrorIs(t, NewNotFoundError("x"), ErrConflict)
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("db down")
	err := NewInternalError("database error", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db down")
}
