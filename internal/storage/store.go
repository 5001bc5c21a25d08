// Package storage provides abstractions for the shop's record index.
package storage

import (
	"context"

	"github.com/kisankhidmat/khidmat/internal/models"
)

// Store indexes generated bills and consultation uploads.
// Ledgers and the message log live in their own files; this index only records
// that a document or image was produced, and when.
type Store interface {
	// CreateBillRecord persists a bill record. ID and CreatedAt are populated
	// by the store when empty.
	CreateBillRecord(ctx context.Context, record *models.BillRecord) error

	// ListBillRecords returns the bill records for phone, newest first.
	// An empty phone lists every record.
	ListBillRecords(ctx context.Context, phone string) ([]*models.BillRecord, error)

	// CreateConsultation persists a consultation record. ID and CreatedAt are
	// populated by the store when empty.
	CreateConsultation(ctx context.Context, c *models.Consultation) error

	// ListConsultations returns consultation records for phone, newest first.
	// An empty phone lists every record.
	ListConsultations(ctx context.Context, phone string) ([]*models.Consultation, error)

	// Close releases any resources held by the store.
	Close() error
}
