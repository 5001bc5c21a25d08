package service

import (
	"context"
	"log/slog"

	"github.com/kisankhidmat/khidmat/internal/billing"
	"github.com/kisankhidmat/khidmat/internal/ledger"
	"github.com/kisankhidmat/khidmat/internal/models"
	"github.com/kisankhidmat/khidmat/internal/storage"
)

// BillGenerator renders a customer's bill, writes it to the bill directory and
// indexes it. It is shared by CustomerService and the download handler.
type BillGenerator struct {
	ledgers *ledger.Store
	records storage.Store
	shop    string
	dir     string
}

// NewBillGenerator creates a BillGenerator writing documents under dir.
func NewBillGenerator(ledgers *ledger.Store, records storage.Store, shop, dir string) *BillGenerator {
	return &BillGenerator{ledgers: ledgers, records: records, shop: shop, dir: dir}
}

// GeneratedBill is a rendered bill together with its index record.
type GeneratedBill struct {
	Document *billing.Document
	Path     string
	Record   *models.BillRecord
}

// Generate renders the bill for phone. The ledger must exist.
func (g *BillGenerator) Generate(ctx context.Context, phone string) (*GeneratedBill, error) {
	if err := ledger.ValidatePhone(phone); err != nil {
		return nil, err
	}
	exists, err := g.ledgers.Exists(phone)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ledger.ErrNotFound
	}

	entries, err := g.ledgers.Load(phone)
	if err != nil {
		return nil, err
	}

	doc := billing.RenderBill(g.shop, phone, entries)
	path, err := billing.WriteBill(g.dir, doc)
	if err != nil {
		return nil, err
	}

	record := &models.BillRecord{
		Phone:    phone,
		FileName: doc.FileName(),
		TotalDue: billing.TotalDue(entries),
		Lines:    doc.Rows,
	}
	if err := g.records.CreateBillRecord(ctx, record); err != nil {
		// The document is already on disk; a missing index row only hides it from ListBills.
		slog.Warn("Failed to index bill", "phone", phone, "error", err)
	}

	return &GeneratedBill{Document: doc, Path: path, Record: record}, nil
}
