package store_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arkantrust/invoicegen/invoice"
	"github.com/arkantrust/invoicegen/models"
	"github.com/arkantrust/invoicegen/store"
)

func newTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.New(filepath.Join(dir, "test.db"), opts...)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func completed(number string) models.CompletedInvoice {
	return models.CompletedInvoice{
		ID:            "id-" + number,
		InvoiceNumber: number,
		Subtotal:      decimal.NewFromInt(10),
		TotalDue:      decimal.NewFromInt(10),
		CreatedDate:   time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC),
	}
}

func TestEmptyStore(t *testing.T) {
	s := newTestStore(t)

	items, err := s.History()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil history, got %v", items)
	}

	if _, ok, err := s.LoadDraft(); err != nil || ok {
		t.Fatalf("expected no draft, got ok=%v err=%v", ok, err)
	}

	next, err := s.NextNumber()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != "001" {
		t.Fatalf("expected first number 001, got %q", next)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	s := newTestStore(t)

	d := models.Draft{
		InvoiceNumber: "007",
		InvoiceDate:   "2025-03-05",
		DueDate:       "2025-03-12",
		ClientName:    "Acme",
		ClientAddress: "1 Main St",
		ClientPhone:   "+92 300 0000000",
		AlreadyPaid:   "5",
		BankName:      "HBL",
		AccountName:   "Unix-Net",
		AccountNumber: "0001",
		Items: []models.LineItemInput{
			{Desc: "Widget", Price: "10.50", Qty: "3"},
			{Desc: "Service", Price: "abc", Qty: ""},
		},
	}
	if err := s.SaveDraft(d); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := s.LoadDraft()
	if err != nil || !ok {
		t.Fatalf("expected draft, got ok=%v err=%v", ok, err)
	}
	if got.InvoiceNumber != "" {
		t.Fatalf("invoice number must not be restored, got %q", got.InvoiceNumber)
	}

	want := d
	want.InvoiceNumber = ""
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveDraftLastWriteWins(t *testing.T) {
	s := newTestStore(t)

	_ = s.SaveDraft(models.Draft{ClientName: "first"})
	_ = s.SaveDraft(models.Draft{ClientName: "second"})

	got, _, err := s.LoadDraft()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ClientName != "second" {
		t.Fatalf("expected last write, got %q", got.ClientName)
	}
}

func TestClearDraftTwice(t *testing.T) {
	s := newTestStore(t)
	_ = s.SaveDraft(models.Draft{ClientName: "x"})

	if err := s.ClearDraft(); err != nil {
		t.Fatalf("unexpected error on first clear: %v", err)
	}
	if err := s.ClearDraft(); err != nil {
		t.Fatalf("unexpected error on second clear: %v", err)
	}
	if _, ok, _ := s.LoadDraft(); ok {
		t.Fatal("draft should be gone")
	}
}

func TestCommit(t *testing.T) {
	s := newTestStore(t)
	_ = s.SaveDraft(models.Draft{ClientName: "pending"})

	if err := s.Commit(completed("001")); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if _, ok, _ := s.LoadDraft(); ok {
		t.Fatal("commit must clear the draft")
	}
	last, err := s.LastNumber()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != 1 {
		t.Fatalf("expected counter 1, got %d", last)
	}

	found, err := s.Find("id-001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !found.Subtotal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("subtotal not preserved: %s", found.Subtotal)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	s := newTestStore(t)
	_ = s.Commit(completed("001"))
	_ = s.Commit(completed("002"))

	items, err := s.History()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if items[0].InvoiceNumber != "002" || items[1].InvoiceNumber != "001" {
		t.Fatalf("expected 002 before 001, got %s, %s", items[0].InvoiceNumber, items[1].InvoiceNumber)
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 55; i++ {
		if err := s.Commit(completed(invoice.FormatNumber(i))); err != nil {
			t.Fatalf("commit %d: %v", i, err)
		}
	}

	items, err := s.History()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != store.DefaultHistoryLimit {
		t.Fatalf("expected %d entries, got %d", store.DefaultHistoryLimit, len(items))
	}
	if items[0].InvoiceNumber != "055" {
		t.Fatalf("expected newest first, got %s", items[0].InvoiceNumber)
	}
	if items[len(items)-1].InvoiceNumber != "006" {
		t.Fatalf("expected 001-005 evicted, oldest kept is %s", items[len(items)-1].InvoiceNumber)
	}
}

func TestHistoryEvictionIgnoresNumbers(t *testing.T) {
	s := newTestStore(t, store.WithHistoryLimit(2))

	// Commit order, not invoice number, decides eviction.
	_ = s.Commit(completed("900"))
	_ = s.Commit(completed("002"))
	_ = s.Commit(completed("003"))

	items, _ := s.History()
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if items[0].InvoiceNumber != "003" || items[1].InvoiceNumber != "002" {
		t.Fatalf("expected 900 evicted, got %s, %s", items[0].InvoiceNumber, items[1].InvoiceNumber)
	}
}

func TestCounterSequence(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 4; i++ {
		next, err := s.NextNumber()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Commit(completed(next)); err != nil {
			t.Fatalf("commit: %v", err)
		}
		if want := invoice.FormatNumber(i); next != want {
			t.Fatalf("build %d: expected %s, got %s", i, want, next)
		}
	}

	next, _ := s.NextNumber()
	if next != "005" {
		t.Fatalf("expected 005, got %s", next)
	}
}

func TestCounterNeverDecreases(t *testing.T) {
	s := newTestStore(t)
	_ = s.Commit(completed("010"))
	_ = s.Commit(completed("003"))
	_ = s.Commit(completed("garbage"))

	last, err := s.LastNumber()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != 10 {
		t.Fatalf("expected counter to stay at 10, got %d", last)
	}
}

func TestFindNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Find("missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReopenKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := store.New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = s.Commit(completed("001"))
	_ = s.SaveDraft(models.Draft{ClientName: "next client"})
	s.Close()

	s, err = store.New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	next, _ := s.NextNumber()
	if next != "002" {
		t.Fatalf("expected 002 after reopen, got %s", next)
	}
	d, ok, _ := s.LoadDraft()
	if !ok || d.ClientName != "next client" {
		t.Fatalf("draft lost across reopen: ok=%v %+v", ok, d)
	}
}
