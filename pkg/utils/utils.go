package utils

import (
	"github.com/shopspring/decimal"
)

// DecimalScale returns the number of fractional digits carried by d.
// "50000.00" has scale 2, "5e3" has scale 0.
func DecimalScale(d decimal.Decimal) int32 {
	if exp := d.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

// NormalizePage clamps page and size into usable bounds.
func NormalizePage(page, size, defaultSize, maxSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return page, size
}

// Offset converts a zero-based page into a row offset.
func Offset(page, size int) int {
	return page * size
}
