package dateutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{raw: "05/25/2021", expected: "2021-05-25"},
		{raw: "5/3/2021", expected: "2021-05-03"},
		{raw: "06-14-2006", expected: "2006-06-14"},
		{raw: "2021-05-25", expected: "2021-05-25"},
		{raw: "May 25, 2021", expected: "2021-05-25"},
		{raw: "Jan 4, 2010", expected: "2010-01-04"},
		{raw: "  05/25/2021\n", expected: "2021-05-25"},
	}

	for _, test := range testCases {
		got, err := Parse(test.raw)
		require.NoError(t, err, "raw: %q", test.raw)
		require.Equal(t, test.expected, got)

		// canonical form must reparse to itself
		again, err := Parse(got)
		require.NoError(t, err)
		require.Equal(t, got, again)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "n/a", "tomorrow", "13/45/2021"} {
		_, err := Parse(raw)
		require.Error(t, err, "raw: %q", raw)

		var parseErr ParseError
		require.True(t, errors.As(err, &parseErr))
		require.Equal(t, raw, parseErr.Raw)
	}
}
