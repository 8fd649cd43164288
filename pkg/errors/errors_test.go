package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := New("TEST", "failed", http.StatusTeapot).WithInternal(internal)

	require.Equal(t, "failed: boom", err.Error())
	require.ErrorIs(t, err, internal)
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", 400)
	with := base.WithInternal(stdErrors.New("oops"))

	require.NotSame(t, base, with)
	require.Nil(t, base.Internal)
	require.NotNil(t, with.Internal)
}

func TestIsMatchesCopiesOfSentinel(t *testing.T) {
	copied := ErrNotFound.WithInternal(stdErrors.New("record not found"))
	wrapped := fmt.Errorf("lookup snippet: %w", copied)

	require.ErrorIs(t, wrapped, ErrNotFound)
	require.NotErrorIs(t, wrapped, ErrConflict)
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	require.Same(t, appErr, FromError(appErr))

	out := FromError(stdErrors.New("raw"))
	require.Equal(t, ErrInternalServer.Code, out.Code)
	require.NotNil(t, out.Internal)

	require.Nil(t, FromError(nil))
}

func TestConstructors(t *testing.T) {
	bad := NewBadRequest("invalid payload")
	require.Equal(t, ErrBadRequest.Code, bad.Code)
	require.Equal(t, "invalid payload", bad.Message)
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)

	ref := NewReferenceError("category 9 does not exist")
	require.Equal(t, http.StatusUnprocessableEntity, ref.StatusCode)
	require.ErrorIs(t, ref, ErrReferenceNotFound)
	require.Equal(t, "Referenced resource does not exist", ErrReferenceNotFound.Message)
}
