// Package handlers provides the HTTP API of the invoice generator.
//
// The front end autosaves its form with PUT /draft on every edit, restores
// it with GET /draft on load and submits it with POST /invoices. A
// successful submit builds the invoice, archives it and clears the draft;
// the stored invoice can then be previewed, exported or shared.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/arkantrust/invoicegen/invoice"
	"github.com/arkantrust/invoicegen/models"
	"github.com/arkantrust/invoicegen/render"
	"github.com/arkantrust/invoicegen/store"
)

const maxBodyBytes = 1 << 20

// Handler holds the dependencies for all invoice HTTP handlers.
type Handler struct {
	store    *store.Store
	builder  *invoice.Builder
	renderer *render.Renderer
	log      *slog.Logger
	now      func() time.Time
}

// New creates a new Handler.
func New(s *store.Store, b *invoice.Builder, r *render.Renderer, log *slog.Logger) *Handler {
	return &Handler{
		store:    s,
		builder:  b,
		renderer: r,
		log:      log,
		now:      time.Now,
	}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /draft", h.getDraft)
	mux.HandleFunc("PUT /draft", h.saveDraft)
	mux.HandleFunc("DELETE /draft", h.clearDraft)

	mux.HandleFunc("GET /invoices", h.list)
	mux.HandleFunc("POST /invoices", h.create)
	mux.HandleFunc("GET /invoices/{id}", h.get)
	mux.HandleFunc("GET /invoices/{id}/preview", h.preview)
	mux.HandleFunc("GET /invoices/{id}/pdf", h.pdf)
	mux.HandleFunc("GET /invoices/{id}/share", h.share)
}

// writeJSON serialises v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.Error(msg, "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, msg)
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (models.Draft, bool) {
	var d models.Draft
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return models.Draft{}, false
	}
	return d, true
}

// freshDraft is the form a user sees with nothing saved: default dates, no
// payment and a single empty row.
func (h *Handler) freshDraft() models.Draft {
	invoiceDate, dueDate := invoice.DefaultDates(h.now())
	return models.Draft{
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		AlreadyPaid: "0",
		Items:       []models.LineItemInput{{Qty: "1"}},
	}
}

// getDraft handles GET /draft.
// Returns the autosaved draft, or a fresh one when nothing usable is stored.
// The invoice number always comes from the counter.
func (h *Handler) getDraft(w http.ResponseWriter, r *http.Request) {
	d, ok, err := h.store.LoadDraft()
	if err != nil {
		h.internalError(w, r, "failed to load draft", err)
		return
	}
	if !ok {
		d = h.freshDraft()
	}

	d.InvoiceNumber, err = h.store.NextNumber()
	if err != nil {
		h.internalError(w, r, "failed to read invoice number", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// saveDraft handles PUT /draft.
func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	if err := h.store.SaveDraft(d); err != nil {
		h.internalError(w, r, "failed to save draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clearDraft handles DELETE /draft.
// Drops the autosaved draft and returns the fresh form that replaces it.
func (h *Handler) clearDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearDraft(); err != nil {
		h.internalError(w, r, "failed to clear draft", err)
		return
	}

	d := h.freshDraft()
	var err error
	d.InvoiceNumber, err = h.store.NextNumber()
	if err != nil {
		h.internalError(w, r, "failed to read invoice number", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// create handles POST /invoices.
//
// Builds the submitted draft and commits the result. A blank invoice number
// is replaced by the next number from the counter. Malformed prices and
// quantities never reject the request; the builder substitutes defaults.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	if d.InvoiceNumber == "" {
		next, err := h.store.NextNumber()
		if err != nil {
			h.internalError(w, r, "failed to read invoice number", err)
			return
		}
		d.InvoiceNumber = next
	}

	inv := h.builder.Build(d)
	if err := h.store.Commit(inv); err != nil {
		h.internalError(w, r, "failed to save invoice", err)
		return
	}

	h.log.Info("invoice committed",
		"id", inv.ID,
		"number", inv.InvoiceNumber,
		"items", len(inv.Items),
		"total_due", inv.TotalDue.String(),
	)
	writeJSON(w, http.StatusCreated, inv)
}

// list handles GET /invoices.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.History()
	if err != nil {
		h.internalError(w, r, "failed to list invoices", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// find loads the invoice named by the {id} path value, writing the error
// response itself when it cannot.
func (h *Handler) find(w http.ResponseWriter, r *http.Request) (*models.CompletedInvoice, bool) {
	inv, err := h.store.Find(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return nil, false
		}
		h.internalError(w, r, "failed to load invoice", err)
		return nil, false
	}
	return inv, true
}

// get handles GET /invoices/{id}.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// preview handles GET /invoices/{id}/preview.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.HTML(&buf, inv); err != nil {
		h.internalError(w, r, "failed to render invoice", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck
}

// pdf handles GET /invoices/{id}/pdf.
func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.PDF(&buf, inv); err != nil {
		h.internalError(w, r, "failed to generate PDF", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": "invoice-" + inv.InvoiceNumber + ".pdf",
	}))
	w.Write(buf.Bytes()) //nolint:errcheck
}

// share handles GET /invoices/{id}/share.
// Returns the WhatsApp text message and a wa.me link carrying it.
func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": h.renderer.ShareMessage(inv),
		"url":     h.renderer.ShareURL(inv),
	})
}
