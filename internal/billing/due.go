// Package billing computes outstanding dues and renders printable bills.
package billing

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/kisankhidmat/khidmat/internal/models"
)

// TopCustomerCount is the number of customers listed on the dashboard.
const TopCustomerCount = 5

// TotalDue returns sum(amount) - sum(paid) over entries. Zero for an empty ledger.
func TotalDue(entries []models.Transaction) decimal.Decimal {
	amount := decimal.Zero
	paid := decimal.Zero
	for _, e := range entries {
		amount = amount.Add(e.Amount)
		paid = paid.Add(e.Paid)
	}
	return amount.Sub(paid)
}

// CustomerDue is one customer's outstanding due.
type CustomerDue struct {
	Phone string
	Due   decimal.Decimal
}

// Summary is the admin dashboard view over all ledgers.
type Summary struct {
	TotalOutstanding decimal.Decimal
	Customers        int
	TopCustomers     []CustomerDue
}

// DashboardSummary sums the due of every ledger and picks the customers with the
// highest dues, descending. Ties keep the order of ledgers.
func DashboardSummary(ledgers []models.CustomerLedger) Summary {
	total := decimal.Zero
	dues := make([]CustomerDue, 0, len(ledgers))
	for _, l := range ledgers {
		due := TotalDue(l.Entries)
		total = total.Add(due)
		dues = append(dues, CustomerDue{Phone: l.Phone, Due: due})
	}

	slices.SortStableFunc(dues, func(a, b CustomerDue) int {
		return b.Due.Cmp(a.Due)
	})
	if len(dues) > TopCustomerCount {
		dues = dues[:TopCustomerCount]
	}

	return Summary{
		TotalOutstanding: total,
		Customers:        len(ledgers),
		TopCustomers:     dues,
	}
}
