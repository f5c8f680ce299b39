package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{1050, "USD", "10.50"},
		{1050, "usdc", "10.50"},
		{5, "EUR", "0.05"},
		{1050, "JPY", "1050"},
		{0, "USD", "0.00"},
		{-250, "USD", "-2.50"},
		{123456, "XYZ", "1234.56"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency), "%d %s", tt.amount, tt.currency)
	}
}
