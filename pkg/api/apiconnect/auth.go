package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/pkg/api"
)

const AuthServiceName = "khidmat.v1.AuthService"

const AuthServiceLoginProcedure = "/khidmat.v1.AuthService/Login"

// AuthServiceHandler is implemented by the admin login service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	login := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceLoginProcedure:
			login.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AuthServiceClient calls AuthService.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

type authServiceClient struct {
	login *connect.Client[api.LoginRequest, api.LoginResponse]
}

// NewAuthServiceClient creates a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &authServiceClient{
		login: connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}
