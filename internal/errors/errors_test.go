package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("node %q", "r1")
	require.Error(t, err)

	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsValidationError(err))
	assert.Contains(t, err.Error(), `node "r1"`)
}

func TestNewInvalidRequestError(t *testing.T) {
	err := NewInvalidRequestError("bad status %s", "purple")

	assert.True(t, IsInvalidRequestError(err))
	assert.False(t, IsNotFoundError(err))
}

func TestSentinelHelpersNil(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsInvalidRequestError(nil))
}

func TestWithHint(t *testing.T) {
	err := WithHint(Wrap(ErrValidation, "duplicate node id"), "node ids must be unique")

	assert.True(t, IsValidationError(err))
	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "node ids must be unique", hints[0])
}
