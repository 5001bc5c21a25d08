package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/internal/ledger"
	"github.com/kisankhidmat/khidmat/pkg/api"
)

// BillDownloadPrefix is where generated bills can be fetched over plain HTTP.
const BillDownloadPrefix = "/bills/"

// CustomerService implements the customer-facing procedures. Customers
// identify themselves by phone number only.
type CustomerService struct {
	ledgers *ledger.Store
	bills   *BillGenerator
	metrics Recorder
}

// NewCustomerService creates a CustomerService. A nil recorder disables metrics.
func NewCustomerService(ledgers *ledger.Store, bills *BillGenerator, rec Recorder) *CustomerService {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &CustomerService{ledgers: ledgers, bills: bills, metrics: rec}
}

// Register creates an empty ledger for a new customer. The name is required
// but only logged.
func (s *CustomerService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("Register request received", "name", name, "phone", phone)

	if name == "" || phone == "" {
		return nil, toConnectError(validationError("name and phone are required"))
	}

	if err := s.ledgers.Register(phone); err != nil {
		slog.Error("Register failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.LedgerWrite("register")

	slog.Info("Customer registered", "phone", phone)
	return connect.NewResponse(&api.RegisterResponse{Phone: phone}), nil
}

// GetLedger returns the customer's entries and outstanding due.
func (s *CustomerService) GetLedger(ctx context.Context, req *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error) {
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("GetLedger request received", "phone", phone)

	if err := ledger.ValidatePhone(phone); err != nil {
		return nil, toConnectError(err)
	}
	exists, err := s.ledgers.Exists(phone)
	if err != nil {
		slog.Error("GetLedger failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}
	if !exists {
		return nil, toConnectError(ledger.ErrNotFound)
	}

	entries, err := s.ledgers.Load(phone)
	if err != nil {
		slog.Error("GetLedger failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetLedgerResponse{Ledger: toAPILedger(phone, entries)}), nil
}

// GenerateBill renders the customer's bill, stores it and returns its text.
func (s *CustomerService) GenerateBill(ctx context.Context, req *connect.Request[api.GenerateBillRequest]) (*connect.Response[api.GenerateBillResponse], error) {
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("GenerateBill request received", "phone", phone)

	bill, err := s.bills.Generate(ctx, phone)
	if err != nil {
		slog.Error("GenerateBill failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Bill generated", "phone", phone, "path", bill.Path, "pages", len(bill.Document.Pages))
	return connect.NewResponse(&api.GenerateBillResponse{
		BillID:       bill.Record.ID,
		FileName:     bill.Record.FileName,
		DownloadPath: BillDownloadPrefix + phone,
		Pages:        len(bill.Document.Pages),
		Content:      string(bill.Document.Bytes()),
		TotalDue:     bill.Record.TotalDue,
	}), nil
}
