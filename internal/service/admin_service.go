package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/internal/billing"
	"github.com/kisankhidmat/khidmat/internal/images"
	"github.com/kisankhidmat/khidmat/internal/ledger"
	"github.com/kisankhidmat/khidmat/internal/messages"
	"github.com/kisankhidmat/khidmat/internal/models"
	"github.com/kisankhidmat/khidmat/internal/storage"
	"github.com/kisankhidmat/khidmat/internal/weather"
	"github.com/kisankhidmat/khidmat/pkg/api"
)

// EmptyLedgerWarning is returned by DeleteLastEntry when there is nothing to delete.
const EmptyLedgerWarning = "No entries to delete."

// AdminService implements the staff procedures. Every call requires an admin
// session (see middleware.RequireAdmin).
type AdminService struct {
	ledgers  *ledger.Store
	messages *messages.Log
	images   *images.Intake
	records  storage.Store
	weather  weather.Fetcher
	metrics  Recorder
	now      func() time.Time
}

// AdminDeps groups the stores AdminService works on.
type AdminDeps struct {
	Ledgers  *ledger.Store
	Messages *messages.Log
	Images   *images.Intake
	Records  storage.Store
	Weather  weather.Fetcher
	Metrics  Recorder
}

// NewAdminService creates an AdminService. A nil Metrics disables metrics.
func NewAdminService(deps AdminDeps) *AdminService {
	rec := deps.Metrics
	if rec == nil {
		rec = nopRecorder{}
	}
	return &AdminService{
		ledgers:  deps.Ledgers,
		messages: deps.Messages,
		images:   deps.Images,
		records:  deps.Records,
		weather:  deps.Weather,
		metrics:  rec,
		now:      time.Now,
	}
}

// GetDashboard summarises outstanding dues across all customers.
func (s *AdminService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	slog.Info("GetDashboard request received")

	ledgers, err := s.ledgers.LoadAll()
	if err != nil {
		slog.Error("GetDashboard failed", "error", err)
		return nil, toConnectError(err)
	}

	summary := billing.DashboardSummary(ledgers)
	top := make([]api.CustomerDue, len(summary.TopCustomers))
	for i, c := range summary.TopCustomers {
		top[i] = api.CustomerDue{Phone: c.Phone, Due: c.Due}
	}

	return connect.NewResponse(&api.GetDashboardResponse{
		TotalOutstanding: summary.TotalOutstanding,
		Customers:        summary.Customers,
		TopCustomers:     top,
	}), nil
}

// ListEntries returns a customer's ledger. An unknown phone yields an empty ledger.
func (s *AdminService) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("ListEntries request received", "phone", phone)

	entries, err := s.ledgers.Load(phone)
	if err != nil {
		slog.Error("ListEntries failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListEntriesResponse{Ledger: toAPILedger(phone, entries)}), nil
}

// AddEntry appends a transaction, creating the ledger if needed.
func (s *AdminService) AddEntry(ctx context.Context, req *connect.Request[api.AddEntryRequest]) (*connect.Response[api.AddEntryResponse], error) {
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("AddEntry request received", "phone", phone, "item", req.Msg.Item)

	txn, err := entryFromRequest(phone, req.Msg.Date, req.Msg.Item, req.Msg.Amount, req.Msg.Paid, s.now())
	if err != nil {
		return nil, toConnectError(err)
	}

	entries, err := s.ledgers.AddEntry(phone, txn)
	if err != nil {
		slog.Error("AddEntry failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.LedgerWrite("add")

	slog.Info("Entry added", "phone", phone, "rows", len(entries))
	return connect.NewResponse(&api.AddEntryResponse{Ledger: toAPILedger(phone, entries)}), nil
}

// EditEntry replaces the row at Index. The index is checked against the ledger
// as it is on disk now.
func (s *AdminService) EditEntry(ctx context.Context, req *connect.Request[api.EditEntryRequest]) (*connect.Response[api.EditEntryResponse], error) {
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("EditEntry request received", "phone", phone, "index", req.Msg.Index)

	txn, err := entryFromRequest(phone, req.Msg.Date, req.Msg.Item, req.Msg.Amount, req.Msg.Paid, s.now())
	if err != nil {
		return nil, toConnectError(err)
	}

	entries, err := s.ledgers.EditEntry(phone, req.Msg.Index, txn)
	if err != nil {
		slog.Error("EditEntry failed", "phone", phone, "index", req.Msg.Index, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.LedgerWrite("edit")

	return connect.NewResponse(&api.EditEntryResponse{Ledger: toAPILedger(phone, entries)}), nil
}

// DeleteLastEntry removes the most recent row. On an empty ledger it succeeds
// with Removed=false and a warning.
func (s *AdminService) DeleteLastEntry(ctx context.Context, req *connect.Request[api.DeleteLastEntryRequest]) (*connect.Response[api.DeleteLastEntryResponse], error) {
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("DeleteLastEntry request received", "phone", phone)

	entries, removed, err := s.ledgers.DeleteLast(phone)
	if err != nil {
		slog.Error("DeleteLastEntry failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.DeleteLastEntryResponse{Removed: removed, Ledger: toAPILedger(phone, entries)}
	if removed {
		s.metrics.LedgerWrite("delete")
	} else {
		resp.Warning = EmptyLedgerWarning
	}
	return connect.NewResponse(resp), nil
}

// LogMessage records an outbound message for a customer.
func (s *AdminService) LogMessage(ctx context.Context, req *connect.Request[api.LogMessageRequest]) (*connect.Response[api.LogMessageResponse], error) {
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("LogMessage request received", "phone", phone)

	if phone == "" || strings.TrimSpace(req.Msg.Message) == "" {
		return nil, toConnectError(validationError("phone and message are required"))
	}

	entry, err := s.messages.Append(ctx, phone, req.Msg.Message)
	if err != nil {
		slog.Error("LogMessage failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.MessageLogged()

	return connect.NewResponse(&api.LogMessageResponse{Entry: toAPIMessage(entry)}), nil
}

// ListMessages returns the message log in the order it was written.
func (s *AdminService) ListMessages(ctx context.Context, req *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error) {
	slog.Info("ListMessages request received")

	entries, err := s.messages.All()
	if err != nil {
		slog.Error("ListMessages failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.MessageEntry, len(entries))
	for i, e := range entries {
		out[i] = toAPIMessage(e)
	}
	return connect.NewResponse(&api.ListMessagesResponse{Messages: out}), nil
}

// UploadImage stores a consultation photo and indexes it.
func (s *AdminService) UploadImage(ctx context.Context, req *connect.Request[api.UploadImageRequest]) (*connect.Response[api.UploadImageResponse], error) {
	phone := strings.TrimSpace(req.Msg.Phone)
	slog.Info("UploadImage request received", "phone", phone, "bytes", len(req.Msg.Content))

	stored, err := s.images.Store(phone, req.Msg.Content)
	if err != nil {
		slog.Error("UploadImage failed", "phone", phone, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.ImageStored()

	c := &models.Consultation{
		Phone:     phone,
		FileName:  stored.FileName,
		SizeBytes: stored.Size,
		CreatedAt: stored.StoredAt.Unix(),
	}
	if err := s.records.CreateConsultation(ctx, c); err != nil {
		// The image itself is safe on disk.
		slog.Warn("Failed to index consultation", "phone", phone, "file", stored.FileName, "error", err)
	}

	slog.Info("Image stored", "phone", phone, "file", stored.FileName)
	return connect.NewResponse(&api.UploadImageResponse{Consultation: toAPIConsultation(c)}), nil
}

// ListConsultations lists indexed uploads, newest first. An empty phone lists all.
func (s *AdminService) ListConsultations(ctx context.Context, req *connect.Request[api.ListConsultationsRequest]) (*connect.Response[api.ListConsultationsResponse], error) {
	slog.Info("ListConsultations request received", "phone", req.Msg.Phone)

	records, err := s.records.ListConsultations(ctx, strings.TrimSpace(req.Msg.Phone))
	if err != nil {
		slog.Error("ListConsultations failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Consultation, len(records))
	for i, c := range records {
		out[i] = toAPIConsultation(c)
	}
	return connect.NewResponse(&api.ListConsultationsResponse{Consultations: out}), nil
}

// ListBills lists generated bills, newest first. An empty phone lists all.
func (s *AdminService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	slog.Info("ListBills request received", "phone", req.Msg.Phone)

	records, err := s.records.ListBillRecords(ctx, strings.TrimSpace(req.Msg.Phone))
	if err != nil {
		slog.Error("ListBills failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.BillRecord, len(records))
	for i, r := range records {
		out[i] = toAPIBillRecord(r)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}

// GetAdvisory returns today's spraying advisory. It never fails; weather
// failures come back as the unavailable advisory.
func (s *AdminService) GetAdvisory(ctx context.Context, req *connect.Request[api.GetAdvisoryRequest]) (*connect.Response[api.GetAdvisoryResponse], error) {
	slog.Info("GetAdvisory request received")

	var advisory weather.Advisory
	if s.weather == nil {
		advisory = weather.Unavailable()
	} else {
		advisory = weather.Recommend(ctx, s.weather)
	}
	s.metrics.Advisory(string(advisory.Kind))

	resp := &api.GetAdvisoryResponse{Kind: string(advisory.Kind), Message: advisory.Message}
	if advisory.Conditions != nil {
		temp := advisory.Conditions.TempC
		resp.Description = advisory.Conditions.Description
		resp.TempC = &temp
	}
	return connect.NewResponse(resp), nil
}
