package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kisankhidmat/khidmat/internal/auth"
	"github.com/kisankhidmat/khidmat/internal/billing"
	"github.com/kisankhidmat/khidmat/internal/config"
	"github.com/kisankhidmat/khidmat/pkg/api"
	"github.com/kisankhidmat/khidmat/pkg/api/apiconnect"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := auth.HashPassword("shop-admin-pass", bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Data.Dir = t.TempDir()
	cfg.Admin.PasswordHash = hash
	cfg.Admin.JWTSecret = "0123456789abcdef0123"
	require.NoError(t, cfg.Validate())
	return cfg
}

func startApp(t *testing.T) string {
	t.Helper()
	a, err := newApp(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	handler, err := a.handler()
	require.NoError(t, err)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

func TestAppEndToEnd(t *testing.T) {
	baseURL := startApp(t)
	ctx := context.Background()

	authClient := apiconnect.NewAuthServiceClient(http.DefaultClient, baseURL)
	adminClient := apiconnect.NewAdminServiceClient(http.DefaultClient, baseURL)
	customerClient := apiconnect.NewCustomerServiceClient(http.DefaultClient, baseURL)

	login, err := authClient.Login(ctx, connect.NewRequest(&api.LoginRequest{Password: "shop-admin-pass"}))
	require.NoError(t, err)

	req := connect.NewRequest(&api.AddEntryRequest{
		Phone:  "9000000001",
		Date:   "2024-03-10",
		Item:   "DAP",
		Amount: decimal.NewFromInt(1200),
		Paid:   decimal.NewFromInt(1000),
	})
	req.Header().Set("Authorization", "Bearer "+login.Msg.Token)
	_, err = adminClient.AddEntry(ctx, req)
	require.NoError(t, err)

	ledger, err := customerClient.GetLedger(ctx, connect.NewRequest(&api.GetLedgerRequest{Phone: "9000000001"}))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(ledger.Msg.Ledger.TotalDue))

	// Advisory without an API key degrades to unavailable.
	advReq := connect.NewRequest(&api.GetAdvisoryRequest{})
	advReq.Header().Set("Authorization", "Bearer "+login.Msg.Token)
	adv, err := adminClient.GetAdvisory(ctx, advReq)
	require.NoError(t, err)
	assert.Equal(t, "unavailable", adv.Msg.Kind)

	resp, err := http.Get(baseURL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `khidmat_rpc_requests_total{code="ok",procedure="/khidmat.v1.AdminService/AddEntry"} 1`)
	assert.Contains(t, string(body), `khidmat_ledger_writes_total{operation="add"} 1`)
}

func TestHealthzAndCORS(t *testing.T) {
	baseURL := startApp(t)

	resp, err := http.Get(baseURL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	preflight, err := http.NewRequest(http.MethodOptions, baseURL+apiconnect.AdminServiceAddEntryProcedure, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(preflight)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("from-stdin-pass\n"))
	cmd.SetArgs([]string{"hash-password", "--cost", "4"})
	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(out.String())
	a, err := auth.NewPasswordAuthenticator(hash)
	require.NoError(t, err)
	assert.NoError(t, a.Authenticate(context.Background(), "from-stdin-pass"))

	cmd = rootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"hash-password", "short"})
	assert.ErrorIs(t, cmd.Execute(), auth.ErrWeakPassword)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "khidmat version "+Version+"\n", out.String())
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, billing.Summary{
		TotalOutstanding: decimal.NewFromInt(350),
		Customers:        2,
		TopCustomers: []billing.CustomerDue{
			{Phone: "111", Due: decimal.NewFromInt(300)},
			{Phone: "222", Due: decimal.NewFromInt(50)},
		},
	})

	got := out.String()
	assert.Contains(t, got, "Customers: 2\n")
	assert.Contains(t, got, "Total outstanding: ₹350\n")
	assert.Contains(t, got, "111    ₹300")
}
