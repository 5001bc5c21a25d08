package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisankhidmat/khidmat/internal/auth"
)

type emptyMsg struct{}

func TestRequireAdmin(t *testing.T) {
	jwtManager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	token, _, err := jwtManager.Generate()
	require.NoError(t, err)

	var seenSubject string
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seenSubject = GetSubject(ctx)
		return connect.NewResponse(&emptyMsg{}), nil
	}
	handler := RequireAdmin(jwtManager)(next)

	tests := []struct {
		name   string
		header string
		ok     bool
	}{
		{"valid token", "Bearer " + token, true},
		{"missing header", "", false},
		{"wrong scheme", "Basic " + token, false},
		{"garbage token", "Bearer abc.def.ghi", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenSubject = ""
			req := connect.NewRequest(&emptyMsg{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := handler(context.Background(), req)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, auth.AdminSubject, seenSubject)
				return
			}
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
			assert.Empty(t, seenSubject)
		})
	}
}

type observation struct {
	procedure string
	code      string
}

type fakeRecorder struct {
	seen []observation
}

func (f *fakeRecorder) ObserveRPC(procedure, code string, duration time.Duration) {
	f.seen = append(f.seen, observation{procedure, code})
}

func TestMetricsInterceptor(t *testing.T) {
	rec := &fakeRecorder{}
	ok := MetricsInterceptor(rec)(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&emptyMsg{}), nil
	})
	failing := MetricsInterceptor(rec)(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("no ledger"))
	})

	_, err := ok(context.Background(), connect.NewRequest(&emptyMsg{}))
	require.NoError(t, err)
	_, err = failing(context.Background(), connect.NewRequest(&emptyMsg{}))
	require.Error(t, err)

	require.Len(t, rec.seen, 2)
	assert.Equal(t, "ok", rec.seen[0].code)
	assert.Equal(t, "not_found", rec.seen[1].code)
}

func TestLoggingInterceptorLogsAdminSubject(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	jwtManager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	token, _, err := jwtManager.Generate()
	require.NoError(t, err)

	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&emptyMsg{}), nil
	}
	handler := RequireAdmin(jwtManager)(LoggingInterceptor()(next))

	req := connect.NewRequest(&emptyMsg{})
	req.Header().Set("Authorization", "Bearer "+token)
	_, err = handler(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "RPC ok")
	assert.Contains(t, buf.String(), "subject="+auth.AdminSubject)
}
