package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		num      int64
		expected string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{21, "Twenty One"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{118, "One Hundred Eighteen"},
		{305, "Three Hundred Five"},
		{1000, "One Thousand"},
		{1001, "One Thousand One"},
		{12345, "Twelve Thousand Three Hundred Forty Five"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{100000, "One Lakh"},
		{250000, "Two Lakh Fifty Thousand"},
		{9999999, "Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{10000000, "One Crore"},
		{10000100, "One Crore One Hundred"},
		{1500000000, "One Hundred Fifty Crore"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := NumberToWords(tt.num)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNumberToWords_Negative(t *testing.T) {
	_, err := NumberToWords(-1)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestNumberToWords_Whitespace(t *testing.T) {
	check := func(n int64) {
		got, err := NumberToWords(n)
		require.NoError(t, err)
		if strings.Contains(got, "  ") || strings.TrimSpace(got) != got || got == "" {
			t.Fatalf("bad spacing for %d: %q", n, got)
		}
	}

	for n := int64(0); n < 2000; n++ {
		check(n)
	}
	for n := int64(0); n < 1_000_000_000; n += 99_991 {
		check(n)
	}
	for _, n := range []int64{100_000, 1_000_000, 10_000_000, 100_000_000, 999_999_999} {
		check(n)
	}
}

func TestRupeesInWords(t *testing.T) {
	got, err := RupeesInWords(118)
	require.NoError(t, err)
	assert.Equal(t, "One Hundred Eighteen Rupees Only", got)

	got, err = RupeesInWords(0)
	require.NoError(t, err)
	assert.Equal(t, "Zero Rupees Only", got)
}
