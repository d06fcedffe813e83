package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestSentinelHierarchy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		parent error
	}{
		{"person not found is not found", ErrPersonNotFound, ErrNotFound},
		{"focal not found is not found", ErrFocalNotFound, ErrNotFound},
		{"unknown node is not found", ErrUnknownNode, ErrNotFound},
		{"unknown attribute is invalid request", ErrUnknownAttribute, ErrInvalidRequest},
		{"incompatible schema is invalid config", ErrIncompatibleSchema, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Is(tt.err, tt.parent))
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.True(t, IsNotFoundError(Wrap(ErrPersonNotFound, "id 12")))
	assert.False(t, IsNotFoundError(ErrSimulationStopped))
}

func TestNewInvalidConfigError(t *testing.T) {
	err := NewInvalidConfigError("population.count must be >= 2, got %d", 1)
	assert.True(t, Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "got 1")
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrPopulationTooSmall, "pass --count 2 or more")
	assert.True(t, Is(err, ErrPopulationTooSmall))
	assert.Equal(t, []string{"pass --count 2 or more"}, GetAllHints(err))
}
