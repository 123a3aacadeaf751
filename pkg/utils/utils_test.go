package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDecimalScale(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int32
	}{
		{name: "integer", input: "50000", expected: 0},
		{name: "two decimals", input: "50000.00", expected: 2},
		{name: "three decimals", input: "10.125", expected: 3},
		{name: "positive exponent", input: "5e3", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecimalScale(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		expectedPage int
		expectedSize int
	}{
		{name: "defaults applied", page: -1, size: 0, expectedPage: 0, expectedSize: 10},
		{name: "clamped to max", page: 2, size: 500, expectedPage: 2, expectedSize: 100},
		{name: "unchanged", page: 3, size: 25, expectedPage: 3, expectedSize: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePage(tt.page, tt.size, 10, 100)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedSize, size)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 30, Offset(3, 10))
}
