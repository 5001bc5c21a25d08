package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kisankhidmat/khidmat/internal/billing"
	"github.com/kisankhidmat/khidmat/internal/models"
	"github.com/kisankhidmat/khidmat/pkg/api"
)

func toAPILedger(phone string, entries []models.Transaction) api.Ledger {
	out := make([]api.Entry, len(entries))
	for i, e := range entries {
		out[i] = api.Entry{
			Index:  i,
			Date:   e.Date.Format(models.DateLayout),
			Item:   e.Item,
			Amount: e.Amount,
			Paid:   e.Paid,
		}
	}
	return api.Ledger{Phone: phone, Entries: out, TotalDue: billing.TotalDue(entries)}
}

func toAPIMessage(e models.MessageEntry) api.MessageEntry {
	return api.MessageEntry{
		Phone:    e.Phone,
		Message:  e.Message,
		LoggedAt: e.LoggedAt.Format(models.MessageTimeLayout),
	}
}

func toAPIConsultation(c *models.Consultation) api.Consultation {
	return api.Consultation{
		ID:        c.ID,
		Phone:     c.Phone,
		FileName:  c.FileName,
		SizeBytes: c.SizeBytes,
		CreatedAt: c.CreatedAt,
	}
}

func toAPIBillRecord(r *models.BillRecord) api.BillRecord {
	return api.BillRecord{
		ID:        r.ID,
		Phone:     r.Phone,
		FileName:  r.FileName,
		TotalDue:  r.TotalDue,
		Lines:     r.Lines,
		CreatedAt: r.CreatedAt,
	}
}

// entryFromRequest validates the form fields shared by add and edit.
// An empty date means today.
func entryFromRequest(phone, date, item string, amount, paid decimal.Decimal, now time.Time) (models.Transaction, error) {
	if strings.TrimSpace(phone) == "" {
		return models.Transaction{}, validationError("phone is required")
	}
	day := now
	if date != "" {
		parsed, err := time.Parse(models.DateLayout, date)
		if err != nil {
			return models.Transaction{}, validationError("date must be YYYY-MM-DD: %q", date)
		}
		day = parsed
	}
	if amount.IsNegative() {
		return models.Transaction{}, validationError("amount must not be negative")
	}
	if paid.IsNegative() {
		return models.Transaction{}, validationError("paid must not be negative")
	}
	return models.NewTransaction(day, item, amount, paid), nil
}
