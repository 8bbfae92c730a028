package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := NewAppError(http.StatusInternalServerError, "error saving user", cause)

	assert.Equal(t, "error saving user: db down", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAppError_WithoutCause(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, "invalid attribute", nil)
	assert.Equal(t, "invalid attribute", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestStatusAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("start session: %w", NewAppError(http.StatusNotFound, "hero not found", nil))

	assert.Equal(t, http.StatusNotFound, Status(wrapped))
	assert.Equal(t, "hero not found", Message(wrapped))

	plain := errors.New("boom")
	assert.Equal(t, http.StatusInternalServerError, Status(plain))
	assert.Equal(t, "boom", Message(plain))
}
