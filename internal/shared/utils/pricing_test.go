package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents    int64
		currency string
		want     string
	}{
		{1000, "USD", "$10.00"},
		{1999, "EUR", "€19.99"},
		{5, "USD", "$0.05"},
		{-550, "USD", "-$5.50"},
		{0, "USD", "$0.00"},
		{1234, "JPY", "12.34 JPY"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCents(tt.cents, tt.currency))
	}
}
