package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/arkantrust/invoicegen/models"
)

const previewTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice {{.InvoiceNumber}}</title>
</head>
<body>
<div id="invoicePreview" class="invoice">
  <header>
    <h1>{{.Business}}</h1>
    <h2>INVOICE</h2>
    <dl class="invoice-meta">
      <dt>Invoice #</dt><dd id="displayInvoiceNumber">{{.InvoiceNumber}}</dd>
      <dt>Invoice Date</dt><dd id="displayInvoiceDate">{{.InvoiceDate}}</dd>
      <dt>Due Date</dt><dd id="displayDueDate">{{.DueDate}}</dd>
    </dl>
  </header>
  <section class="bill-to">
    <h3>Bill To</h3>
    <p id="displayClientName">{{.ClientName}}</p>
    <p id="displayClientAddress">{{.ClientAddress}}</p>
    <p id="displayClientPhone">{{.ClientPhone}}</p>
  </section>
  <table class="items">
    <thead>
      <tr><th>No</th><th>Description</th><th>Price</th><th>Qty</th><th>Total</th></tr>
    </thead>
    <tbody id="invoiceItems">
    {{- range .Items}}
      <tr><td>{{.No}}</td><td>{{.Description}}</td><td>{{.Price}}</td><td>{{.Qty}}</td><td>{{.Total}}</td></tr>
    {{- end}}
    </tbody>
  </table>
  <section class="totals">
    <p>Sub Total: <span id="displaySubTotal">{{.Subtotal}}</span></p>
    <p>Already Paid: <span id="displayAlreadyPaid">{{.AlreadyPaid}}</span></p>
    <p>Total Due: <strong id="displayTotalDue">{{.TotalDue}}</strong></p>
  </section>
  <section class="payment">
    <h3>Payment Details</h3>
    <p>Bank: <span id="displayBankName">{{.BankName}}</span></p>
    <p>Account Name: <span id="displayAccountName">{{.AccountName}}</span></p>
    <p>Account Number: <span id="displayAccountNumber">{{.AccountNumber}}</span></p>
  </section>
</div>
</body>
</html>
`

var preview = template.Must(template.New("preview").Parse(previewTemplate))

type previewRow struct {
	No          int
	Description string
	Price       string
	Qty         int
	Total       string
}

type previewData struct {
	Business      string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	ClientName    string
	ClientAddress string
	ClientPhone   string
	Items         []previewRow
	Subtotal      string
	AlreadyPaid   string
	TotalDue      string
	BankName      string
	AccountName   string
	AccountNumber string
}

// HTML writes a standalone HTML preview of inv to w.
func (r *Renderer) HTML(w io.Writer, inv *models.CompletedInvoice) error {
	data := previewData{
		Business:      r.BusinessName,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		ClientName:    inv.ClientName,
		ClientAddress: inv.ClientAddress,
		ClientPhone:   inv.ClientPhone,
		Items:         make([]previewRow, 0, len(inv.Items)),
		Subtotal:      r.Currency(inv.Subtotal),
		AlreadyPaid:   r.Currency(inv.AlreadyPaid),
		TotalDue:      r.Currency(inv.TotalDue),
		BankName:      inv.BankName,
		AccountName:   inv.AccountName,
		AccountNumber: inv.AccountNumber,
	}
	for _, it := range inv.Items {
		data.Items = append(data.Items, previewRow{
			No:          it.No,
			Description: it.Description,
			Price:       r.Currency(it.Price),
			Qty:         it.Qty,
			Total:       r.Currency(it.Total),
		})
	}

	if err := preview.Execute(w, data); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}
