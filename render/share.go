package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/arkantrust/invoicegen/models"
)

const whatsAppURL = "https://wa.me/"

// ShareMessage builds the plain-text WhatsApp message for inv. A blank
// number or client name is shown as "001" or "Client".
func (r *Renderer) ShareMessage(inv *models.CompletedInvoice) string {
	number := inv.InvoiceNumber
	if number == "" {
		number = "001"
	}
	client := inv.ClientName
	if client == "" {
		client = "Client"
	}
	total := r.Currency(inv.TotalDue)
	business := strings.ToUpper(r.BusinessName)

	return fmt.Sprintf(`🧾 *INVOICE FROM %s*

📋 *Invoice Details:*
• Invoice #: %s
• Client: %s
• Invoice Date: %s
• Due Date: %s

💰 *Total Amount Due: %s*

📞 *Contact:*
%s
For any queries, please contact us.

Thank you for your business! 🙏`,
		business, number, client, inv.InvoiceDate, inv.DueDate, total, r.BusinessName)
}

// ShareURL returns a wa.me link that opens WhatsApp with the share message
// pre-filled. Spaces are encoded as %20.
func (r *Renderer) ShareURL(inv *models.CompletedInvoice) string {
	text := strings.ReplaceAll(url.QueryEscape(r.ShareMessage(inv)), "+", "%20")
	return whatsAppURL + "?text=" + text
}
