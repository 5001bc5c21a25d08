package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/pkg/api"
)

const AdminServiceName = "khidmat.v1.AdminService"

const (
	AdminServiceGetDashboardProcedure      = "/khidmat.v1.AdminService/GetDashboard"
	AdminServiceListEntriesProcedure       = "/khidmat.v1.AdminService/ListEntries"
	AdminServiceAddEntryProcedure          = "/khidmat.v1.AdminService/AddEntry"
	AdminServiceEditEntryProcedure         = "/khidmat.v1.AdminService/EditEntry"
	AdminServiceDeleteLastEntryProcedure   = "/khidmat.v1.AdminService/DeleteLastEntry"
	AdminServiceLogMessageProcedure        = "/khidmat.v1.AdminService/LogMessage"
	AdminServiceListMessagesProcedure      = "/khidmat.v1.AdminService/ListMessages"
	AdminServiceUploadImageProcedure       = "/khidmat.v1.AdminService/UploadImage"
	AdminServiceListConsultationsProcedure = "/khidmat.v1.AdminService/ListConsultations"
	AdminServiceListBillsProcedure         = "/khidmat.v1.AdminService/ListBills"
	AdminServiceGetAdvisoryProcedure       = "/khidmat.v1.AdminService/GetAdvisory"
)

// AdminServiceHandler is implemented by the admin service. Every procedure
// requires an admin session token.
type AdminServiceHandler interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	ListEntries(context.Context, *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error)
	AddEntry(context.Context, *connect.Request[api.AddEntryRequest]) (*connect.Response[api.AddEntryResponse], error)
	EditEntry(context.Context, *connect.Request[api.EditEntryRequest]) (*connect.Response[api.EditEntryResponse], error)
	DeleteLastEntry(context.Context, *connect.Request[api.DeleteLastEntryRequest]) (*connect.Response[api.DeleteLastEntryResponse], error)
	LogMessage(context.Context, *connect.Request[api.LogMessageRequest]) (*connect.Response[api.LogMessageResponse], error)
	ListMessages(context.Context, *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error)
	UploadImage(context.Context, *connect.Request[api.UploadImageRequest]) (*connect.Response[api.UploadImageResponse], error)
	ListConsultations(context.Context, *connect.Request[api.ListConsultationsRequest]) (*connect.Response[api.ListConsultationsResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetAdvisory(context.Context, *connect.Request[api.GetAdvisoryRequest]) (*connect.Response[api.GetAdvisoryResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	getDashboard := connect.NewUnaryHandler(AdminServiceGetDashboardProcedure, svc.GetDashboard, opts...)
	listEntries := connect.NewUnaryHandler(AdminServiceListEntriesProcedure, svc.ListEntries, opts...)
	addEntry := connect.NewUnaryHandler(AdminServiceAddEntryProcedure, svc.AddEntry, opts...)
	editEntry := connect.NewUnaryHandler(AdminServiceEditEntryProcedure, svc.EditEntry, opts...)
	deleteLastEntry := connect.NewUnaryHandler(AdminServiceDeleteLastEntryProcedure, svc.DeleteLastEntry, opts...)
	logMessage := connect.NewUnaryHandler(AdminServiceLogMessageProcedure, svc.LogMessage, opts...)
	listMessages := connect.NewUnaryHandler(AdminServiceListMessagesProcedure, svc.ListMessages, opts...)
	uploadImage := connect.NewUnaryHandler(AdminServiceUploadImageProcedure, svc.UploadImage, opts...)
	listConsultations := connect.NewUnaryHandler(AdminServiceListConsultationsProcedure, svc.ListConsultations, opts...)
	listBills := connect.NewUnaryHandler(AdminServiceListBillsProcedure, svc.ListBills, opts...)
	getAdvisory := connect.NewUnaryHandler(AdminServiceGetAdvisoryProcedure, svc.GetAdvisory, opts...)
	return "/" + AdminServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AdminServiceGetDashboardProcedure:
			getDashboard.ServeHTTP(w, r)
		case AdminServiceListEntriesProcedure:
			listEntries.ServeHTTP(w, r)
		case AdminServiceAddEntryProcedure:
			addEntry.ServeHTTP(w, r)
		case AdminServiceEditEntryProcedure:
			editEntry.ServeHTTP(w, r)
		case AdminServiceDeleteLastEntryProcedure:
			deleteLastEntry.ServeHTTP(w, r)
		case AdminServiceLogMessageProcedure:
			logMessage.ServeHTTP(w, r)
		case AdminServiceListMessagesProcedure:
			listMessages.ServeHTTP(w, r)
		case AdminServiceUploadImageProcedure:
			uploadImage.ServeHTTP(w, r)
		case AdminServiceListConsultationsProcedure:
			listConsultations.ServeHTTP(w, r)
		case AdminServiceListBillsProcedure:
			listBills.ServeHTTP(w, r)
		case AdminServiceGetAdvisoryProcedure:
			getAdvisory.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AdminServiceClient calls AdminService.
type AdminServiceClient interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	ListEntries(context.Context, *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error)
	AddEntry(context.Context, *connect.Request[api.AddEntryRequest]) (*connect.Response[api.AddEntryResponse], error)
	EditEntry(context.Context, *connect.Request[api.EditEntryRequest]) (*connect.Response[api.EditEntryResponse], error)
	DeleteLastEntry(context.Context, *connect.Request[api.DeleteLastEntryRequest]) (*connect.Response[api.DeleteLastEntryResponse], error)
	LogMessage(context.Context, *connect.Request[api.LogMessageRequest]) (*connect.Response[api.LogMessageResponse], error)
	ListMessages(context.Context, *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error)
	UploadImage(context.Context, *connect.Request[api.UploadImageRequest]) (*connect.Response[api.UploadImageResponse], error)
	ListConsultations(context.Context, *connect.Request[api.ListConsultationsRequest]) (*connect.Response[api.ListConsultationsResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetAdvisory(context.Context, *connect.Request[api.GetAdvisoryRequest]) (*connect.Response[api.GetAdvisoryResponse], error)
}

type adminServiceClient struct {
	getDashboard      *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
	listEntries       *connect.Client[api.ListEntriesRequest, api.ListEntriesResponse]
	addEntry          *connect.Client[api.AddEntryRequest, api.AddEntryResponse]
	editEntry         *connect.Client[api.EditEntryRequest, api.EditEntryResponse]
	deleteLastEntry   *connect.Client[api.DeleteLastEntryRequest, api.DeleteLastEntryResponse]
	logMessage        *connect.Client[api.LogMessageRequest, api.LogMessageResponse]
	listMessages      *connect.Client[api.ListMessagesRequest, api.ListMessagesResponse]
	uploadImage       *connect.Client[api.UploadImageRequest, api.UploadImageResponse]
	listConsultations *connect.Client[api.ListConsultationsRequest, api.ListConsultationsResponse]
	listBills         *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	getAdvisory       *connect.Client[api.GetAdvisoryRequest, api.GetAdvisoryResponse]
}

// NewAdminServiceClient creates a client for the service at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &adminServiceClient{
		getDashboard:      connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+AdminServiceGetDashboardProcedure, opts...),
		listEntries:       connect.NewClient[api.ListEntriesRequest, api.ListEntriesResponse](httpClient, baseURL+AdminServiceListEntriesProcedure, opts...),
		addEntry:          connect.NewClient[api.AddEntryRequest, api.AddEntryResponse](httpClient, baseURL+AdminServiceAddEntryProcedure, opts...),
		editEntry:         connect.NewClient[api.EditEntryRequest, api.EditEntryResponse](httpClient, baseURL+AdminServiceEditEntryProcedure, opts...),
		deleteLastEntry:   connect.NewClient[api.DeleteLastEntryRequest, api.DeleteLastEntryResponse](httpClient, baseURL+AdminServiceDeleteLastEntryProcedure, opts...),
		logMessage:        connect.NewClient[api.LogMessageRequest, api.LogMessageResponse](httpClient, baseURL+AdminServiceLogMessageProcedure, opts...),
		listMessages:      connect.NewClient[api.ListMessagesRequest, api.ListMessagesResponse](httpClient, baseURL+AdminServiceListMessagesProcedure, opts...),
		uploadImage:       connect.NewClient[api.UploadImageRequest, api.UploadImageResponse](httpClient, baseURL+AdminServiceUploadImageProcedure, opts...),
		listConsultations: connect.NewClient[api.ListConsultationsRequest, api.ListConsultationsResponse](httpClient, baseURL+AdminServiceListConsultationsProcedure, opts...),
		listBills:         connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+AdminServiceListBillsProcedure, opts...),
		getAdvisory:       connect.NewClient[api.GetAdvisoryRequest, api.GetAdvisoryResponse](httpClient, baseURL+AdminServiceGetAdvisoryProcedure, opts...),
	}
}

func (c *adminServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}

func (c *adminServiceClient) AddEntry(ctx context.Context, req *connect.Request[api.AddEntryRequest]) (*connect.Response[api.AddEntryResponse], error) {
	return c.addEntry.CallUnary(ctx, req)
}

func (c *adminServiceClient) EditEntry(ctx context.Context, req *connect.Request[api.EditEntryRequest]) (*connect.Response[api.EditEntryResponse], error) {
	return c.editEntry.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteLastEntry(ctx context.Context, req *connect.Request[api.DeleteLastEntryRequest]) (*connect.Response[api.DeleteLastEntryResponse], error) {
	return c.deleteLastEntry.CallUnary(ctx, req)
}

func (c *adminServiceClient) LogMessage(ctx context.Context, req *connect.Request[api.LogMessageRequest]) (*connect.Response[api.LogMessageResponse], error) {
	return c.logMessage.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListMessages(ctx context.Context, req *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error) {
	return c.listMessages.CallUnary(ctx, req)
}

func (c *adminServiceClient) UploadImage(ctx context.Context, req *connect.Request[api.UploadImageRequest]) (*connect.Response[api.UploadImageResponse], error) {
	return c.uploadImage.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListConsultations(ctx context.Context, req *connect.Request[api.ListConsultationsRequest]) (*connect.Response[api.ListConsultationsResponse], error) {
	return c.listConsultations.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *adminServiceClient) GetAdvisory(ctx context.Context, req *connect.Request[api.GetAdvisoryRequest]) (*connect.Response[api.GetAdvisoryResponse], error) {
	return c.getAdvisory.CallUnary(ctx, req)
}
