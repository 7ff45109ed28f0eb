// Package render turns completed invoices into something a person can read:
// an HTML preview, a PDF and a WhatsApp share message.
//
// Renderers only read the invoice. They run after the invoice has been
// committed, so a failure here never touches the draft or the history.
package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrencyPrefix = "RS."
	DefaultBusinessName   = "Unix-Net Technologies"
)

// Renderer holds the presentation settings shared by every output format.
type Renderer struct {
	CurrencyPrefix string
	BusinessName   string
}

// New returns a Renderer, filling empty settings with the defaults.
func New(currencyPrefix, businessName string) *Renderer {
	if currencyPrefix == "" {
		currencyPrefix = DefaultCurrencyPrefix
	}
	if businessName == "" {
		businessName = DefaultBusinessName
	}
	return &Renderer{CurrencyPrefix: currencyPrefix, BusinessName: businessName}
}

// Currency formats amount as a whole number with comma thousands
// separators behind the currency prefix, e.g. "RS.1,235". Halves round away
// from zero. A negative amount keeps its sign after the prefix: "RS.-5".
func (r *Renderer) Currency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	digits := rounded.Abs().StringFixed(0)

	var b strings.Builder
	b.WriteString(r.CurrencyPrefix)
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
