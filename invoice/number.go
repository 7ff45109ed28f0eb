package invoice

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberWidth is the zero-padded display width of invoice numbers.
const NumberWidth = 3

// FormatNumber renders n zero-padded to NumberWidth digits. Numbers wider
// than that are printed in full.
func FormatNumber(n int) string {
	return fmt.Sprintf("%0*d", NumberWidth, n)
}

// ParseNumber reads a stored or user-entered invoice number. Missing,
// negative or garbage input yields 0.
func ParseNumber(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NextNumber returns the number that follows last.
func NextNumber(last string) string {
	return FormatNumber(ParseNumber(last) + 1)
}
