package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRPC(t *testing.T) {
	m := New()
	m.ObserveRPC("/khidmat.v1.AdminService/AddEntry", "ok", 15*time.Millisecond)
	m.ObserveRPC("/khidmat.v1.AdminService/AddEntry", "ok", 5*time.Millisecond)
	m.ObserveRPC("/khidmat.v1.AdminService/AddEntry", "invalid_argument", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("/khidmat.v1.AdminService/AddEntry", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("/khidmat.v1.AdminService/AddEntry", "invalid_argument")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.LedgerWrite("add")
	m.MessagesLogged.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `khidmat_ledger_writes_total{operation="add"} 1`)
	assert.Contains(t, string(body), "khidmat_messages_logged_total 1")
}
