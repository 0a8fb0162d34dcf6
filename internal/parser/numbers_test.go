package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumbers(t *testing.T) {
	t.Parallel()

	got, err := ParseNumbers([]string{"7", " 1000-1003 ", "", "2"})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 1000, 1001, 1002, 1003, 2}, got)
}

func TestParseNumbersSingletonRange(t *testing.T) {
	t.Parallel()

	got, err := ParseNumbers([]string{"5-5"})
	require.NoError(t, err)
	assert.Equal(t, []int{5}, got)
}

func TestParseNumbersErrors(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		token   string
		message string
	}{
		{token: "abc", message: `invalid input "abc"`},
		{token: "10-2", message: `invalid range "10-2"`},
		{token: "1-2-3", message: `invalid input "1-2-3"`},
		{token: "-5", message: `invalid input "-5"`},
		{token: "0", message: `invalid input "0"`},
	}
	for _, tc := range tcs {
		_, err := ParseNumbers([]string{tc.token})
		require.Error(t, err, "ParseNumbers(%q)", tc.token)
		assert.True(t, errors.Is(err, ErrInvalidNumber))
		assert.Contains(t, err.Error(), tc.message)
	}
}
