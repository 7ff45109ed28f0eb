package invoice

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxNumberLen bounds how many characters a numeric form field may have.
// Longer input is treated as malformed.
const maxNumberLen = 24

// plainNumber matches an optionally signed decimal without an exponent:
// "12", "-3.5", "0.75", ".5", "7.".
var plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// parsePlain parses s as a plain decimal. ok is false for empty, overlong,
// exponent or otherwise malformed input.
func parsePlain(s string) (d decimal.Decimal, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) > maxNumberLen || !plainNumber.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParsePrice parses a unit price. Empty, unparseable or negative input
// yields zero.
func ParsePrice(s string) decimal.Decimal {
	d := ParseAmount(s)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseQuantity parses a line quantity. A fractional value is truncated;
// anything unparseable, out of range or below one yields one.
func ParseQuantity(s string) int {
	d, ok := parsePlain(s)
	if !ok {
		return 1
	}
	n := d.Truncate(0).BigInt()
	if !n.IsInt64() {
		return 1
	}
	v := n.Int64()
	if v < 1 || v > math.MaxInt {
		return 1
	}
	return int(v)
}

// ParseAmount parses a signed money amount, yielding zero when the input is
// not a plain decimal number.
func ParseAmount(s string) decimal.Decimal {
	d, ok := parsePlain(s)
	if !ok {
		return decimal.Zero
	}
	return d
}
