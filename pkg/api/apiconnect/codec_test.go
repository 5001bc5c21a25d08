package apiconnect

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisankhidmat/khidmat/pkg/api"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&api.AddEntryRequest{Phone: "555", Amount: decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":"12.5"`)

	var req api.AddEntryRequest
	require.NoError(t, codec.Unmarshal([]byte(`{"phone":"555","amount":12.5,"paid":"3"}`), &req))
	assert.True(t, decimal.RequireFromString("12.5").Equal(req.Amount))
	assert.True(t, decimal.NewFromInt(3).Equal(req.Paid))

	// Connect sends an empty body for messages with no fields set.
	var empty api.GetDashboardRequest
	assert.NoError(t, codec.Unmarshal(nil, &empty))
}
