// Package store provides a BoltDB-backed persistence layer for the invoice
// generator.
//
// All state lives in one bucket under three keys: the current draft, the
// last-used invoice number and the history of completed invoices. Values are
// JSON except the invoice number, which is stored as its zero-padded text.
//
// A value that fails to decode is treated as absent. A corrupt draft or
// history must never stop the user from starting a fresh invoice, so decode
// failures are logged and counted rather than returned.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/arkantrust/invoicegen/invoice"
	"github.com/arkantrust/invoicegen/metrics"
	"github.com/arkantrust/invoicegen/models"
)

const bucketName = "invoicegen"

// Storage keys.
const (
	KeyDraft      = "current-draft"
	KeyLastNumber = "last-invoice-number"
	KeyHistory    = "invoice-history"
)

// DefaultHistoryLimit is how many completed invoices are kept.
const DefaultHistoryLimit = 50

// ErrNotFound is returned when a requested invoice is not in the history.
var ErrNotFound = errors.New("invoice not found")

// Store wraps a BoltDB database holding the draft, counter and history.
type Store struct {
	db           *bolt.DB
	historyLimit int
	log          *slog.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithHistoryLimit caps the history at n entries. Values below one are
// ignored.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithLogger sets the logger used to report recovered corruption.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New opens (or creates) a BoltDB database at the given path and ensures the
// bucket exists.
func New(path string, opts ...Option) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	s := &Store{
		db:           db,
		historyLimit: DefaultHistoryLimit,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDraft overwrites the current draft. Last write wins.
func (s *Store) SaveDraft(d models.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(KeyDraft), data)
	})
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	metrics.DraftsSavedTotal.Inc()
	return nil
}

// LoadDraft returns the saved draft, if any. The invoice number is never
// restored: callers derive it from the counter instead. ok is false when no
// draft is stored or the stored one is unreadable.
func (s *Store) LoadDraft() (d models.Draft, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(KeyDraft))
		if v == nil {
			return nil
		}
		if jerr := json.Unmarshal(v, &d); jerr != nil {
			s.recovered(KeyDraft, jerr)
			d = models.Draft{}
			return nil
		}
		ok = true
		return nil
	})
	if err != nil {
		return models.Draft{}, false, fmt.Errorf("load draft: %w", err)
	}

	d.InvoiceNumber = ""
	return d, ok, nil
}

// ClearDraft deletes the current draft. Clearing an absent draft is not an
// error.
func (s *Store) ClearDraft() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(KeyDraft))
	})
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// LastNumber returns the last committed invoice number, or 0 when none has
// been committed yet.
func (s *Store) LastNumber() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = invoice.ParseNumber(string(tx.Bucket([]byte(bucketName)).Get([]byte(KeyLastNumber))))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("read invoice number: %w", err)
	}
	return n, nil
}

// NextNumber returns the zero-padded number the next invoice should use.
func (s *Store) NextNumber() (string, error) {
	n, err := s.LastNumber()
	if err != nil {
		return "", err
	}
	return invoice.FormatNumber(n + 1), nil
}

// History returns the completed invoices, newest first. It never returns
// nil so the JSON encoder emits [] rather than null.
func (s *Store) History() ([]models.CompletedInvoice, error) {
	var items []models.CompletedInvoice
	err := s.db.View(func(tx *bolt.Tx) error {
		items = s.readHistory(tx.Bucket([]byte(bucketName)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return items, nil
}

// Find returns the history entry with the given ID.
func (s *Store) Find(id string) (*models.CompletedInvoice, error) {
	items, err := s.History()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// Commit archives a completed invoice. In a single transaction it prepends
// inv to the history, evicts the oldest entries beyond the limit, advances
// the invoice counter to inv's number and deletes the current draft.
//
// The counter never moves backwards: committing a number lower than the
// stored one leaves the counter as it was.
func (s *Store) Commit(inv models.CompletedInvoice) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		history := append([]models.CompletedInvoice{inv}, s.readHistory(b)...)
		if len(history) > s.historyLimit {
			history = history[:s.historyLimit]
		}
		data, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("encode history: %w", err)
		}
		if err := b.Put([]byte(KeyHistory), data); err != nil {
			return err
		}

		last := invoice.ParseNumber(string(b.Get([]byte(KeyLastNumber))))
		if used := invoice.ParseNumber(inv.InvoiceNumber); used > last {
			if err := b.Put([]byte(KeyLastNumber), []byte(invoice.FormatNumber(used))); err != nil {
				return err
			}
		}

		return b.Delete([]byte(KeyDraft))
	})
	if err != nil {
		return fmt.Errorf("commit invoice %s: %w", inv.InvoiceNumber, err)
	}

	metrics.InvoicesCommittedTotal.Inc()
	return nil
}

// readHistory decodes the history slot of b, treating corruption as empty.
func (s *Store) readHistory(b *bolt.Bucket) []models.CompletedInvoice {
	items := []models.CompletedInvoice{}
	v := b.Get([]byte(KeyHistory))
	if v == nil {
		return items
	}
	if err := json.Unmarshal(v, &items); err != nil {
		s.recovered(KeyHistory, err)
		return []models.CompletedInvoice{}
	}
	if items == nil {
		items = []models.CompletedInvoice{}
	}
	return items
}

func (s *Store) recovered(key string, err error) {
	s.log.Warn("discarding unreadable stored value", "key", key, "error", err)
	metrics.StorageRecoveriesTotal.WithLabelValues(key).Inc()
}
