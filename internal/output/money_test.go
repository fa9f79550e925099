package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{1234.56, "$1,234.56"},
		{1234.565, "$1,234.57"},
		{1000000, "$1,000,000.00"},
		{-2500.5, "-$2,500.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.amount), "amount %v", tt.amount)
	}
}

func TestFormatWholeCurrency(t *testing.T) {
	assert.Equal(t, "$1,235", FormatWholeCurrency(1234.56))
	assert.Equal(t, "$0", FormatWholeCurrency(0.2))
	assert.Equal(t, "$2,000,000", FormatWholeCurrency(2000000))
}

func TestPercentFormatting(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(12.345))
	assert.Equal(t, "7.00%", FormatRate(0.07))
	assert.Equal(t, "-1.50%", FormatRate(-0.015))
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 10.13, RoundCents(10.125))
	assert.Equal(t, "533829.41", FixedString(533829.4149))
}
