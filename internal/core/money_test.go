package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"1":      "1",
		"1.0":    "1",
		"1.23":   "1.23",
		"1,23":   "1.23",
		"0.01":   "0.01",
		"1.005":  "1.005", // no rounding
		" 2.50 ": "2.5",
		"-1":     "-1",
		"+4":     "4",
		"0":      "0",
		".5":     "0.5",
		"1e3":    "1000",
		"1e+2":   "100",
		"2.5E-1": "0.25",
		"1,5e2":  "150",
	}
	for in, want := range valid {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), "%q: got %s want %s", in, got, want)
	}

	for _, in := range []string{"abc", "1.2.3", "--1", ".", "", "e3", "1e", "1e-", "1e2.5", "1e999999999", "1ee2"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"12.5":  "Rs 12.50",
		"0":     "Rs 0.00",
		"30.5":  "Rs 30.50",
		"-4.1":  "-Rs 4.10",
		"1.005": "Rs 1.01",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatAmount(decimal.RequireFromString(in)), in)
	}
}
