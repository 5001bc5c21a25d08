// Package api defines the request and response messages of the khidmat.v1 services.
//
// Messages are plain structs carried as JSON over the Connect protocol (see
// package apiconnect). Money fields are decimal strings; dates use "2006-01-02".
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one ledger line. Index is its 0-based position in the ledger.
type Entry struct {
	Index  int             `json:"index"`
	Date   string          `json:"date"`
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
	Paid   decimal.Decimal `json:"paid"`
}

// Ledger is a customer's entries together with the derived outstanding due.
type Ledger struct {
	Phone    string          `json:"phone"`
	Entries  []Entry         `json:"entries"`
	TotalDue decimal.Decimal `json:"total_due"`
}

type CustomerDue struct {
	Phone string          `json:"phone"`
	Due   decimal.Decimal `json:"due"`
}

type MessageEntry struct {
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	LoggedAt string `json:"logged_at"`
}

type BillRecord struct {
	ID        string          `json:"id"`
	Phone     string          `json:"phone"`
	FileName  string          `json:"file_name"`
	TotalDue  decimal.Decimal `json:"total_due"`
	Lines     int             `json:"lines"`
	CreatedAt int64           `json:"created_at"`
}

type Consultation struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt int64  `json:"created_at"`
}

// AuthService

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CustomerService

type RegisterRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type RegisterResponse struct {
	Phone string `json:"phone"`
}

type GetLedgerRequest struct {
	Phone string `json:"phone"`
}

type GetLedgerResponse struct {
	Ledger Ledger `json:"ledger"`
}

type GenerateBillRequest struct {
	Phone string `json:"phone"`
}

type GenerateBillResponse struct {
	BillID       string          `json:"bill_id"`
	FileName     string          `json:"file_name"`
	DownloadPath string          `json:"download_path"`
	Pages        int             `json:"pages"`
	Content      string          `json:"content"`
	TotalDue     decimal.Decimal `json:"total_due"`
}

// AdminService

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	Customers        int             `json:"customers"`
	TopCustomers     []CustomerDue   `json:"top_customers"`
}

type ListEntriesRequest struct {
	Phone string `json:"phone"`
}

type ListEntriesResponse struct {
	Ledger Ledger `json:"ledger"`
}

type AddEntryRequest struct {
	Phone  string          `json:"phone"`
	Date   string          `json:"date"`
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
	Paid   decimal.Decimal `json:"paid"`
}

type AddEntryResponse struct {
	Ledger Ledger `json:"ledger"`
}

type EditEntryRequest struct {
	Phone  string          `json:"phone"`
	Index  int             `json:"index"`
	Date   string          `json:"date"`
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
	Paid   decimal.Decimal `json:"paid"`
}

type EditEntryResponse struct {
	Ledger Ledger `json:"ledger"`
}

type DeleteLastEntryRequest struct {
	Phone string `json:"phone"`
}

type DeleteLastEntryResponse struct {
	Removed bool   `json:"removed"`
	Warning string `json:"warning,omitempty"`
	Ledger  Ledger `json:"ledger"`
}

type LogMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type LogMessageResponse struct {
	Entry MessageEntry `json:"entry"`
}

type ListMessagesRequest struct{}

type ListMessagesResponse struct {
	Messages []MessageEntry `json:"messages"`
}

type UploadImageRequest struct {
	Phone   string `json:"phone"`
	Content []byte `json:"content"`
}

type UploadImageResponse struct {
	Consultation Consultation `json:"consultation"`
}

type ListConsultationsRequest struct {
	Phone string `json:"phone"`
}

type ListConsultationsResponse struct {
	Consultations []Consultation `json:"consultations"`
}

type ListBillsRequest struct {
	Phone string `json:"phone"`
}

type ListBillsResponse struct {
	Bills []BillRecord `json:"bills"`
}

type GetAdvisoryRequest struct{}

type GetAdvisoryResponse struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Description string   `json:"description,omitempty"`
	TempC       *float64 `json:"temp_c,omitempty"`
}
