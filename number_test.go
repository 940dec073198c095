package l10n

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatShortNumber(t *testing.T) {
	tests := []struct {
		in      int
		want    string
		rounded int
	}{
		{in: 0, want: "0", rounded: 0},
		{in: 999, want: "999", rounded: 999},
		{in: 1000, want: "1K", rounded: 1000},
		{in: 1500, want: "1.5K", rounded: 1500},
		{in: 1099, want: "1K", rounded: 1000},
		{in: 12_345, want: "12.3K", rounded: 12_300},
		{in: 999_999, want: "999.9K", rounded: 999_900},
		{in: 2_300_000, want: "2.3M", rounded: 2_300_000},
		{in: 45_000_000, want: "45M", rounded: 45_000_000},
		{in: 1_250_000_000, want: "1.2KKK", rounded: 1_200_000_000},
		{in: 999_999_999_999_999_999, want: "999.9KKKKK", rounded: 999_900_000_000_000_000},
		{in: math.MaxInt64, want: "9.2KKKKKK", rounded: 9_200_000_000_000_000_000},
	}
	for _, tc := range tests {
		got, rounded := FormatShortNumber(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.rounded, rounded, tc.in)
	}
}

func TestExpandShortSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, expandShort(9, 9, 7))
	assert.Equal(t, math.MaxInt, expandShort(1, 0, 40))
	assert.Equal(t, 1_500, expandShort(1, 5, 1))
}
