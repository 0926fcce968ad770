package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"gstinvoice/models"
)

// ErrInvoiceNotFound means the invoice was never created or has been evicted.
var ErrInvoiceNotFound = errors.New("invoice data not found")

// InvoiceStore holds computed invoices between form submission and export.
type InvoiceStore interface {
	Get(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error)
	Set(ctx context.Context, rec *models.InvoiceRecord) error
	Delete(ctx context.Context, invoiceNo string) error
}

// MemoryInvoiceStore is an LRU keyed by invoice number. Entries expire ttl after
// they were last written; once size entries exist the least recently used goes.
type MemoryInvoiceStore struct {
	cache *expirable.LRU[string, *models.InvoiceRecord]
}

func NewMemoryInvoiceStore(size int, ttl time.Duration) *MemoryInvoiceStore {
	return &MemoryInvoiceStore{
		cache: expirable.NewLRU[string, *models.InvoiceRecord](size, nil, ttl),
	}
}

func (s *MemoryInvoiceStore) Get(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error) {
	rec, ok := s.cache.Get(invoiceNo)
	if !ok {
		return nil, ErrInvoiceNotFound
	}
	return rec, nil
}

// Set replaces any record already cached under the same invoice number
func (s *MemoryInvoiceStore) Set(ctx context.Context, rec *models.InvoiceRecord) error {
	s.cache.Add(rec.InvoiceNo, rec)
	return nil
}

func (s *MemoryInvoiceStore) Delete(ctx context.Context, invoiceNo string) error {
	s.cache.Remove(invoiceNo)
	return nil
}

func (s *MemoryInvoiceStore) Len() int {
	return s.cache.Len()
}

var _ InvoiceStore = (*MemoryInvoiceStore)(nil)
