package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapErrorNilCauseShortCircuits(t *testing.T) {
	require.Nil(t, WrapError("ctx", nil))
}

func TestWrapErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := WrapError("node.set", cause)
	require.Error(t, wrapped)
	require.Equal(t, "node.set: boom", wrapped.Error())
	require.ErrorIs(t, wrapped, cause)
}
