package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/arkantrust/invoicegen/models"
)

// PDF writes inv to w as a single A4 document.
func (r *Renderer) PDF(w io.Writer, inv *models.CompletedInvoice) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, true)
	pdf.AddPage()

	// Core fonts are cp1252; translate user text so accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, tr(r.BusinessName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 8, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, tr("Invoice #: "+inv.InvoiceNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, tr("Invoice Date: "+inv.InvoiceDate), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, tr("Due Date: "+inv.DueDate), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Bill to
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Bill To", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(190, 7, tr(inv.ClientName), "LR", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, tr(inv.ClientAddress), "LR", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, tr(inv.ClientPhone), "LRB", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Items
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(15, 7, "No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(85, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, it := range inv.Items {
		pdf.CellFormat(15, 6, strconv.Itoa(it.No), "1", 0, "C", false, 0, "")
		pdf.CellFormat(85, 6, tr(it.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(r.Currency(it.Price)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, strconv.Itoa(it.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, tr(r.Currency(it.Total)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(155, 7, "Sub Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, tr(r.Currency(inv.Subtotal)), "", 1, "R", false, 0, "")
	pdf.CellFormat(155, 7, "Already Paid", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, tr(r.Currency(inv.AlreadyPaid)), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(155, 8, "Total Due", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, tr(r.Currency(inv.TotalDue)), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Payment details
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payment Details", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(190, 7, tr("Bank: "+inv.BankName), "LR", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, tr("Account Name: "+inv.AccountName), "LR", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, tr("Account Number: "+inv.AccountNumber), "LRB", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
