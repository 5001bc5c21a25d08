// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/kisankhidmat/khidmat/internal/models"
	"github.com/kisankhidmat/khidmat/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateBillRecord persists a bill record.
func (s *SQLiteStore) CreateBillRecord(ctx context.Context, record *models.BillRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO bills (id, phone, file_name, total_due, lines, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		record.ID, record.Phone, record.FileName, record.TotalDue.String(), record.Lines, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill record: %w", err)
	}
	return nil
}

// ListBillRecords retrieves bill records, newest first.
func (s *SQLiteStore) ListBillRecords(ctx context.Context, phone string) ([]*models.BillRecord, error) {
	query := "SELECT id, phone, file_name, total_due, lines, created_at FROM bills"
	var args []any
	if phone != "" {
		query += " WHERE phone = ?"
		args = append(args, phone)
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill records: %w", err)
	}
	defer rows.Close()

	var records []*models.BillRecord
	for rows.Next() {
		record := &models.BillRecord{}
		var due string
		if err := rows.Scan(&record.ID, &record.Phone, &record.FileName, &due, &record.Lines, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill record: %w", err)
		}
		record.TotalDue, err = decimal.NewFromString(due)
		if err != nil {
			return nil, fmt.Errorf("failed to parse total due %q: %w", due, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill records: %w", err)
	}

	return records, nil
}

// CreateConsultation persists a consultation record.
func (s *SQLiteStore) CreateConsultation(ctx context.Context, c *models.Consultation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO consultations (id, phone, file_name, size_bytes, created_at) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.Phone, c.FileName, c.SizeBytes, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert consultation: %w", err)
	}
	return nil
}

// ListConsultations retrieves consultation records, newest first.
func (s *SQLiteStore) ListConsultations(ctx context.Context, phone string) ([]*models.Consultation, error) {
	query := "SELECT id, phone, file_name, size_bytes, created_at FROM consultations"
	var args []any
	if phone != "" {
		query += " WHERE phone = ?"
		args = append(args, phone)
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	defer rows.Close()

	var consultations []*models.Consultation
	for rows.Next() {
		c := &models.Consultation{}
		if err := rows.Scan(&c.ID, &c.Phone, &c.FileName, &c.SizeBytes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan consultation: %w", err)
		}
		consultations = append(consultations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate consultations: %w", err)
	}

	return consultations, nil
}
