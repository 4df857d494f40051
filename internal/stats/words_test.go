package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordCounter_SplitSpace(t *testing.T) {
	require.Equal(t, 2, SplitSpace.Count("hello world"))
	require.Equal(t, 1, SplitSpace.Count(""))
	require.Equal(t, 3, SplitSpace.Count("hello  world"))
}

func TestWordCounter_SplitFields(t *testing.T) {
	require.Equal(t, 2, SplitFields.Count("hello  world"))
	require.Equal(t, 0, SplitFields.Count(""))
	require.Equal(t, 2, SplitFields.Count(" hello\nworld "))
}

func TestParseWordCounter(t *testing.T) {
	w, err := ParseWordCounter("")
	require.NoError(t, err)
	require.Equal(t, SplitSpace, w)

	w, err = ParseWordCounter("Fields")
	require.NoError(t, err)
	require.Equal(t, SplitFields, w)

	_, err = ParseWordCounter("tokens")
	require.ErrorIs(t, err, ErrInvalidWordCounter)
}
