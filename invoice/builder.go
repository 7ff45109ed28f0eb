// Package invoice turns a raw invoice draft into a completed invoice.
//
// Building never fails. Malformed numbers are replaced by defaults (price
// and paid amount become zero, quantity becomes one) so a half-filled form
// can always be previewed.
package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkantrust/invoicegen/models"
)

const (
	inputDateLayout   = "2006-01-02"
	displayDateLayout = "January 2, 2006"
)

// Builder assembles CompletedInvoice records.
type Builder struct {
	now   func() time.Time
	newID func() string
}

// Option customises a Builder.
type Option func(*Builder)

// WithClock sets the clock used for CreatedDate.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDSource sets the generator used for invoice IDs.
func WithIDSource(newID func() string) Option {
	return func(b *Builder) { b.newID = newID }
}

// NewBuilder returns a Builder using the wall clock and random UUIDs.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build computes line totals, the subtotal and the amount due for d and
// returns the finished record. Rows keep their draft order.
func (b *Builder) Build(d models.Draft) models.CompletedInvoice {
	items := make([]models.LineItem, 0, len(d.Items))
	subtotal := decimal.Zero

	for i, row := range d.Items {
		price := ParsePrice(row.Price)
		qty := ParseQuantity(row.Qty)
		total := price.Mul(decimal.NewFromInt(int64(qty)))

		items = append(items, models.LineItem{
			No:          i + 1,
			Description: row.Desc,
			Price:       price,
			Qty:         qty,
			Total:       total,
		})
		subtotal = subtotal.Add(total)
	}

	paid := ParseAmount(d.AlreadyPaid)

	return models.CompletedInvoice{
		ID:            b.newID(),
		InvoiceNumber: d.InvoiceNumber,
		InvoiceDate:   FormatDate(d.InvoiceDate),
		DueDate:       FormatDate(d.DueDate),
		ClientName:    d.ClientName,
		ClientAddress: d.ClientAddress,
		ClientPhone:   d.ClientPhone,
		Items:         items,
		Subtotal:      subtotal,
		AlreadyPaid:   paid,
		TotalDue:      subtotal.Sub(paid),
		BankName:      d.BankName,
		AccountName:   d.AccountName,
		AccountNumber: d.AccountNumber,
		CreatedDate:   b.now().UTC(),
	}
}

// FormatDate turns a form date (YYYY-MM-DD) into its display form, e.g.
// "March 5, 2025". Anything else is returned unchanged.
func FormatDate(s string) string {
	t, err := time.Parse(inputDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(displayDateLayout)
}

// DefaultDates returns the invoice and due dates a fresh form starts with:
// today and one week later.
func DefaultDates(now time.Time) (invoiceDate, dueDate string) {
	return now.Format(inputDateLayout), now.AddDate(0, 0, 7).Format(inputDateLayout)
}
