package billing

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisankhidmat/khidmat/internal/models"
)

func txn(date, item string, amount, paid int64) models.Transaction {
	d, _ := time.Parse(models.DateLayout, date)
	return models.NewTransaction(d, item, decimal.NewFromInt(amount), decimal.NewFromInt(paid))
}

func TestTotalDue(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.Transaction
		want    string
	}{
		{name: "empty ledger", entries: nil, want: "0"},
		{
			name: "seed and fertilizer",
			entries: []models.Transaction{
				txn("2024-01-01", "Seed", 500, 200),
				txn("2024-01-02", "Fertilizer", 300, 300),
			},
			want: "300",
		},
		{
			name:    "overpayment goes negative",
			entries: []models.Transaction{txn("2024-01-01", "Seed", 100, 150)},
			want:    "-50",
		},
		{
			name: "decimal amounts",
			entries: []models.Transaction{
				models.NewTransaction(time.Now(), "a", decimal.RequireFromString("0.1"), decimal.Zero),
				models.NewTransaction(time.Now(), "b", decimal.RequireFromString("0.2"), decimal.Zero),
			},
			want: "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalDue(tt.entries)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func ledgerWithDue(phone string, due int64) models.CustomerLedger {
	return models.CustomerLedger{
		Phone:   phone,
		Entries: []models.Transaction{txn("2024-01-01", "Item", due, 0)},
	}
}

func TestDashboardSummary(t *testing.T) {
	ledgers := []models.CustomerLedger{
		ledgerWithDue("a", 100),
		ledgerWithDue("b", 700),
		ledgerWithDue("c", 300),
		ledgerWithDue("d", 700),
		ledgerWithDue("e", 50),
		ledgerWithDue("f", 300),
		ledgerWithDue("g", 0),
	}

	summary := DashboardSummary(ledgers)

	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(2150)), "total = %s", summary.TotalOutstanding)
	assert.Equal(t, 7, summary.Customers)
	require.Len(t, summary.TopCustomers, TopCustomerCount)

	var phones []string
	for _, c := range summary.TopCustomers {
		phones = append(phones, c.Phone)
	}
	// ties keep ledger order: b before d, c before f
	assert.Equal(t, []string{"b", "d", "c", "f", "a"}, phones)

	for i := 1; i < len(summary.TopCustomers); i++ {
		assert.True(t, summary.TopCustomers[i-1].Due.GreaterThanOrEqual(summary.TopCustomers[i].Due))
	}
}

func TestDashboardSummaryFewCustomers(t *testing.T) {
	summary := DashboardSummary([]models.CustomerLedger{ledgerWithDue("a", 10), ledgerWithDue("b", 20)})
	require.Len(t, summary.TopCustomers, 2)
	assert.Equal(t, "b", summary.TopCustomers[0].Phone)

	empty := DashboardSummary(nil)
	assert.True(t, empty.TotalOutstanding.IsZero())
	assert.Empty(t, empty.TopCustomers)
}

func TestRenderBill(t *testing.T) {
	entries := []models.Transaction{
		txn("2024-01-01", "Seed", 500, 200),
		txn("2024-01-02", "Fertilizer", 300, 300),
	}

	doc := RenderBill("Kisan Khidmat Ghar", "9000000001", entries)

	require.Len(t, doc.Pages, 1)
	lines := doc.Pages[0].Lines
	require.Len(t, lines, 4)
	assert.Equal(t, Line{Y: 800, Text: "Kisan Khidmat Ghar - Bill for 9000000001"}, lines[0])
	assert.Equal(t, Line{Y: 770, Text: "2024-01-01 | Seed | ₹500 | Paid: ₹200"}, lines[1])
	assert.Equal(t, Line{Y: 750, Text: "2024-01-02 | Fertilizer | ₹300 | Paid: ₹300"}, lines[2])
	assert.Equal(t, "Outstanding due: ₹300", lines[3].Text)
	assert.Equal(t, 2, doc.Rows)
	assert.Equal(t, "9000000001_bill.txt", doc.FileName())
}

func TestRenderBillKeepsMultilineItemOnOneRow(t *testing.T) {
	doc := RenderBill("Shop", "1", []models.Transaction{
		txn("2024-01-01", "Urea\nDAP\fPotash\r", 100, 0),
	})

	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Lines, 3)
	assert.Equal(t, "2024-01-01 | Urea DAP Potash  | ₹100 | Paid: ₹0", doc.Pages[0].Lines[1].Text)
	assert.NotContains(t, string(doc.Bytes()), "\f")
	assert.Equal(t, 3, strings.Count(string(doc.Bytes()), "\n"))
}

func TestRenderBillStartsNewPageOnOverflow(t *testing.T) {
	layout := Layout{HeaderY: 100, FirstRowY: 80, LinePitch: 20, BottomMargin: 40} // 3 rows per page
	var entries []models.Transaction
	for i := 0; i < 5; i++ {
		entries = append(entries, txn("2024-01-01", "Item", 10, 0))
	}

	doc := RenderBillWithLayout(layout, "Shop", "1", entries)

	// 5 rows + total = 6 lines, 3 per page
	require.Len(t, doc.Pages, 2)
	assert.Len(t, doc.Pages[0].Lines, 4)
	assert.Len(t, doc.Pages[1].Lines, 4)
	assert.Equal(t, "Shop - Bill for 1 (continued)", doc.Pages[1].Lines[0].Text)
	assert.Equal(t, 80, doc.Pages[1].Lines[1].Y)
	for _, p := range doc.Pages {
		for _, l := range p.Lines {
			assert.GreaterOrEqual(t, l.Y, layout.BottomMargin)
		}
	}
	assert.Equal(t, 1, strings.Count(string(doc.Bytes()), "\f"))
}

func TestWriteBill(t *testing.T) {
	dir := t.TempDir()
	doc := RenderBill("Shop", "9000000001", []models.Transaction{txn("2024-01-01", "Seed", 500, 200)})

	path, err := WriteBill(dir, doc)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Shop - Bill for 9000000001\n2024-01-01 | Seed | ₹500 | Paid: ₹200\nOutstanding due: ₹300\n", string(data))
}
