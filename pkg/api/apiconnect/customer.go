package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/pkg/api"
)

const CustomerServiceName = "khidmat.v1.CustomerService"

const (
	CustomerServiceRegisterProcedure     = "/khidmat.v1.CustomerService/Register"
	CustomerServiceGetLedgerProcedure    = "/khidmat.v1.CustomerService/GetLedger"
	CustomerServiceGenerateBillProcedure = "/khidmat.v1.CustomerService/GenerateBill"
)

// CustomerServiceHandler is implemented by the public customer service.
type CustomerServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	GetLedger(context.Context, *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error)
	GenerateBill(context.Context, *connect.Request[api.GenerateBillRequest]) (*connect.Response[api.GenerateBillResponse], error)
}

// NewCustomerServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewCustomerServiceHandler(svc CustomerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	register := connect.NewUnaryHandler(CustomerServiceRegisterProcedure, svc.Register, opts...)
	getLedger := connect.NewUnaryHandler(CustomerServiceGetLedgerProcedure, svc.GetLedger, opts...)
	generateBill := connect.NewUnaryHandler(CustomerServiceGenerateBillProcedure, svc.GenerateBill, opts...)
	return "/" + CustomerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CustomerServiceRegisterProcedure:
			register.ServeHTTP(w, r)
		case CustomerServiceGetLedgerProcedure:
			getLedger.ServeHTTP(w, r)
		case CustomerServiceGenerateBillProcedure:
			generateBill.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// CustomerServiceClient calls CustomerService.
type CustomerServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	GetLedger(context.Context, *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error)
	GenerateBill(context.Context, *connect.Request[api.GenerateBillRequest]) (*connect.Response[api.GenerateBillResponse], error)
}

type customerServiceClient struct {
	register     *connect.Client[api.RegisterRequest, api.RegisterResponse]
	getLedger    *connect.Client[api.GetLedgerRequest, api.GetLedgerResponse]
	generateBill *connect.Client[api.GenerateBillRequest, api.GenerateBillResponse]
}

// NewCustomerServiceClient creates a client for the service at baseURL.
func NewCustomerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CustomerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &customerServiceClient{
		register:     connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+CustomerServiceRegisterProcedure, opts...),
		getLedger:    connect.NewClient[api.GetLedgerRequest, api.GetLedgerResponse](httpClient, baseURL+CustomerServiceGetLedgerProcedure, opts...),
		generateBill: connect.NewClient[api.GenerateBillRequest, api.GenerateBillResponse](httpClient, baseURL+CustomerServiceGenerateBillProcedure, opts...),
	}
}

func (c *customerServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *customerServiceClient) GetLedger(ctx context.Context, req *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error) {
	return c.getLedger.CallUnary(ctx, req)
}

func (c *customerServiceClient) GenerateBill(ctx context.Context, req *connect.Request[api.GenerateBillRequest]) (*connect.Response[api.GenerateBillResponse], error) {
	return c.generateBill.CallUnary(ctx, req)
}
