package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kisankhidmat/khidmat/internal/models"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "khidmat-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "records.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateBillRecord generates ID and timestamp", func(t *testing.T) {
		record := &models.BillRecord{
			Phone:    "9000000001",
			FileName: "9000000001_bill.txt",
			TotalDue: decimal.RequireFromString("300.50"),
			Lines:    2,
		}

		if err := store.CreateBillRecord(ctx, record); err != nil {
			t.Fatalf("CreateBillRecord failed: %v", err)
		}
		if record.ID == "" {
			t.Error("Expected record ID to be generated")
		}
		if record.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("ListBillRecords filters by phone, newest first", func(t *testing.T) {
		older := &models.BillRecord{Phone: "9000000002", FileName: "a", TotalDue: decimal.NewFromInt(10), CreatedAt: 100}
		newer := &models.BillRecord{Phone: "9000000002", FileName: "b", TotalDue: decimal.NewFromInt(20), CreatedAt: 200}
		for _, r := range []*models.BillRecord{older, newer} {
			if err := store.CreateBillRecord(ctx, r); err != nil {
				t.Fatalf("CreateBillRecord failed: %v", err)
			}
		}

		records, err := store.ListBillRecords(ctx, "9000000002")
		if err != nil {
			t.Fatalf("ListBillRecords failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		if records[0].ID != newer.ID {
			t.Errorf("Expected newest record first, got %s", records[0].FileName)
		}
		if !records[0].TotalDue.Equal(decimal.NewFromInt(20)) {
			t.Errorf("TotalDue mismatch: got %s, want 20", records[0].TotalDue)
		}

		all, err := store.ListBillRecords(ctx, "")
		if err != nil {
			t.Fatalf("ListBillRecords failed: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("Expected 3 records in total, got %d", len(all))
		}
	})

	t.Run("Consultations round trip", func(t *testing.T) {
		c := &models.Consultation{Phone: "9000000001", FileName: "9000000001_20240602140509.jpg", SizeBytes: 2048}
		if err := store.CreateConsultation(ctx, c); err != nil {
			t.Fatalf("CreateConsultation failed: %v", err)
		}

		list, err := store.ListConsultations(ctx, "9000000001")
		if err != nil {
			t.Fatalf("ListConsultations failed: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("Expected 1 consultation, got %d", len(list))
		}
		if list[0].FileName != c.FileName || list[0].SizeBytes != 2048 {
			t.Errorf("Consultation mismatch: got %+v", list[0])
		}

		none, err := store.ListConsultations(ctx, "0000000000")
		if err != nil {
			t.Fatalf("ListConsultations failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("Expected no consultations, got %d", len(none))
		}
	})
}
