package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "Chakoora,IN", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{
			name:   "light rain",
			status: http.StatusOK,
			body:   `{"weather":[{"description":"light rain"}],"main":{"temp":22}}`,
			want:   KindAvoid,
		},
		{
			name:   "clear and hot",
			status: http.StatusOK,
			body:   `{"weather":[{"description":"clear"}],"main":{"temp":34}}`,
			want:   KindEvening,
		},
		{
			name:   "clear and mild",
			status: http.StatusOK,
			body:   `{"weather":[{"description":"clear"}],"main":{"temp":25}}`,
			want:   KindGood,
		},
		{
			name:   "exactly thirty is not hot",
			status: http.StatusOK,
			body:   `{"weather":[{"description":"few clouds"}],"main":{"temp":30}}`,
			want:   KindGood,
		},
		{
			name:   "rain wins over heat",
			status: http.StatusOK,
			body:   `{"weather":[{"description":"heavy intensity rain"}],"main":{"temp":35}}`,
			want:   KindAvoid,
		},
		{
			name:   "bad api key",
			status: http.StatusUnauthorized,
			body:   `{"cod":401,"message":"Invalid API key"}`,
			want:   KindUnavailable,
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `not json`,
			want:   KindUnavailable,
		},
		{
			name:   "missing temperature",
			status: http.StatusOK,
			body:   `{"weather":[{"description":"clear"}],"main":{}}`,
			want:   KindUnavailable,
		},
		{
			name:   "missing description",
			status: http.StatusOK,
			body:   `{"weather":[{"main":"Clear"}],"main":{"temp":22}}`,
			want:   KindUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := weatherServer(t, tt.status, tt.body)
			client := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Location: "Chakoora,IN"})

			advisory := Recommend(context.Background(), client)
			assert.Equal(t, tt.want, advisory.Kind)
			if tt.want == KindUnavailable {
				assert.Equal(t, UnavailableMessage, advisory.Message)
				assert.Nil(t, advisory.Conditions)
			} else {
				assert.NotNil(t, advisory.Conditions)
			}
		})
	}
}

func TestFetchFailureKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   FailureKind
	}{
		{name: "status", status: http.StatusInternalServerError, body: "", want: FailureStatus},
		{name: "decode", status: http.StatusOK, body: "{", want: FailureDecode},
		{name: "no weather entries", status: http.StatusOK, body: `{"weather":[],"main":{"temp":20}}`, want: FailureMissing},
		{name: "missing description", status: http.StatusOK, body: `{"weather":[{"main":"Clear"}],"main":{"temp":22}}`, want: FailureMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := weatherServer(t, tt.status, tt.body)
			client := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Location: "Chakoora,IN"})

			_, err := client.Fetch(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestRecommendNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url, APIKey: "k", Location: "x"})
	_, err := client.Fetch(context.Background())
	assert.Equal(t, FailureRequest, KindOf(err))
	assert.Equal(t, KindUnavailable, Recommend(context.Background(), client).Kind)
}

func TestRecommendTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "k", Location: "x", Timeout: 50 * time.Millisecond})
	start := time.Now()
	advisory := Recommend(context.Background(), client)
	assert.Equal(t, KindUnavailable, advisory.Kind)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAdviseMessages(t *testing.T) {
	a := Advise(Conditions{Description: "clear", TempC: 34})
	assert.Equal(t, "It's too hot. Spray in evening. (clear, 34.0°C)", a.Message)
}
