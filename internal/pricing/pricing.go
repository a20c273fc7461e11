// Package pricing implements the quote form's price calculation. It
// mirrors the arithmetic the embedded form page runs while typing, so
// the Go client and the browser always agree on the numbers.
package pricing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"offer-form-backend/internal/domain"
)

// Longest numeric prefixes, matching how the form page coerces input:
// "20px" reads as 20, "2x" as 2. Text without a leading number reads as
// nothing.
var (
	floatPrefixRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	intPrefixRe   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseDecimal coerces user input to a float. Comma and dot are both
// accepted as decimal separator and trailing garbage after the number is
// ignored. Input without a leading number yields 0 instead of an error
// so the form stays responsive while the user is typing.
func ParseDecimal(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	prefix := floatPrefixRe.FindString(s)
	if prefix == "" {
		return 0
	}
	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// parseIntPrefix reads the leading integer of s. ok is false when there
// is none.
func parseIntPrefix(s string) (n int, ok bool) {
	prefix := intPrefixRe.FindString(strings.TrimSpace(s))
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseAmount coerces the quantity field to an integer, clamped to a
// minimum of 1. Zero, negative and non-numeric input all collapse to 1;
// trailing garbage after the number is ignored.
func ParseAmount(s string) int {
	n, ok := parseIntPrefix(s)
	if !ok || n < 1 {
		return 1
	}
	return n
}

// Calculator computes mat prices from the two deployment-configured
// pricing parameters.
type Calculator struct {
	PricePerSqm           float64 // EUR per square meter
	SpecialShapeSurcharge float64 // fractional, 0.2 means +20%
}

// ComputeItem derives area (m²) and line price from a raw mat input.
// The surcharge multiplies the whole line price after the amount, not
// the per-unit price.
func (c Calculator) ComputeItem(m domain.MatInput) (area, price float64) {
	length := ParseDecimal(m.Length)
	width := ParseDecimal(m.Width)
	amount := ParseAmount(m.Amount)

	area = (length / 100) * (width / 100)
	price = area * c.PricePerSqm * float64(amount)
	if m.IsSpecialShape {
		price *= 1 + c.SpecialShapeSurcharge
	}
	return area, math.Max(0, price)
}

// Total sums the line prices of all mats.
func (c Calculator) Total(mats []domain.MatInput) float64 {
	var total float64
	for _, m := range mats {
		_, price := c.ComputeItem(m)
		total += price
	}
	return total
}
