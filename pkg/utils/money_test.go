package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in       string
		currency string
		want     string
	}{
		{in: "1900", currency: "KZT", want: "1 900,00 ₸"},
		{in: "179.991", currency: "kzt", want: "179,99 ₸"},
		{in: "1234567.5", currency: "USD", want: "1 234 567,50 $"},
		{in: "0", currency: "GBP", want: "0,00 GBP"},
		{in: "12", currency: "", want: "12,00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.in), tt.currency))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "-5%", FormatPercent(decimal.NewFromInt(5)))
	assert.Equal(t, "-12.5%", FormatPercent(decimal.RequireFromString("12.5")))
}
