package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in ledger files and bills.
const DateLayout = "2006-01-02"

// Transaction is a single line on a customer's ledger.
// No relation between Amount and Paid is enforced; Paid may exceed Amount.
type Transaction struct {
	// Date is the calendar date of the line (time of day is always zero, UTC).
	Date time.Time

	// Item is a free-text label (e.g., "Seed", "Fertilizer").
	Item string

	// Amount is the amount charged. Non-negative by input constraint.
	Amount decimal.Decimal

	// Paid is the amount paid against this line. Non-negative by input constraint.
	Paid decimal.Decimal
}

// NewTransaction builds a Transaction, truncating date to the calendar day.
func NewTransaction(date time.Time, item string, amount, paid decimal.Decimal) Transaction {
	return Transaction{
		Date:   Day(date),
		Item:   item,
		Amount: amount,
		Paid:   paid,
	}
}

// Day returns the calendar day of t as a UTC midnight timestamp.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CustomerLedger pairs a phone number with its ordered transactions.
type CustomerLedger struct {
	Phone   string
	Entries []Transaction
}
