// Package models defines the core domain types for the invoice generator.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemInput is one row of the invoice form exactly as the user typed it.
// Price and quantity are kept as raw strings until a build parses them.
type LineItemInput struct {
	Desc  string `json:"desc"`
	Price string `json:"price"`
	Qty   string `json:"qty"`
}

// Draft mirrors the in-progress invoice form. Every field is the raw form
// value; nothing is validated until the draft is built.
type Draft struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   string          `json:"invoiceDate"`
	DueDate       string          `json:"dueDate"`
	ClientName    string          `json:"clientName"`
	ClientAddress string          `json:"clientAddress"`
	ClientPhone   string          `json:"clientPhone"`
	AlreadyPaid   string          `json:"alreadyPaid"`
	BankName      string          `json:"bankName"`
	AccountName   string          `json:"accountName"`
	AccountNumber string          `json:"accountNumber"`
	Items         []LineItemInput `json:"items"`
}

// LineItem is a finalized invoice row.
type LineItem struct {
	// No is the 1-based position of the row in display order.
	No          int             `json:"no"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Qty         int             `json:"qty"`
	// Total is Price × Qty.
	Total decimal.Decimal `json:"total"`
}

// CompletedInvoice is the immutable result of building a Draft. It is
// created once per successful build and appended to the history as-is.
type CompletedInvoice struct {
	// ID uniquely identifies the invoice in the history.
	ID string `json:"id"`

	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	DueDate       string `json:"dueDate"`
	ClientName    string `json:"clientName"`
	ClientAddress string `json:"clientAddress"`
	ClientPhone   string `json:"clientPhone"`

	Items       []LineItem      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	AlreadyPaid decimal.Decimal `json:"alreadyPaid"`
	// TotalDue is Subtotal − AlreadyPaid. Over-payment makes it negative.
	TotalDue decimal.Decimal `json:"totalDue"`

	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`

	// CreatedDate is the UTC time of the build.
	CreatedDate time.Time `json:"createdDate"`
}
