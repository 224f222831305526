package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/config"
	"github.com/jafarshop/sellingplans/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(config.ShopifyConfig{
		ShopDomain:        "https://acme.myshopify.com/",
		AccessToken:       "shpat_test",
		APIVersion:        "2024-10",
		RequestsPerSecond: 100,
	}, zap.NewNop())
	return c.WithEndpoint(srv.URL)
}

func TestNewClientEndpoint(t *testing.T) {
	c := NewClient(config.ShopifyConfig{ShopDomain: "https://acme.myshopify.com/", APIVersion: "2024-10"}, nil)
	assert.Equal(t, "https://acme.myshopify.com/admin/api/2024-10/graphql.json", c.endpoint)
}

func TestExecuteSendsVariables(t *testing.T) {
	var got GraphQLRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":{"shop":{"name":"Acme"}}}`))
	})

	resp, err := c.Execute(context.Background(), ShopQuery, map[string]interface{}{"first": 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"shop":{"name":"Acme"}}`, string(resp.Data))
	assert.Equal(t, ShopQuery, got.Query)
	assert.Equal(t, float64(5), got.Variables["first"])
}

func TestExecuteGraphQLErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Throttled"},{"message":"Access denied"}]}`))
	})
	_, err := c.Execute(context.Background(), ShopQuery, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Throttled; Access denied")
}

func TestExecuteNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`invalid token`))
	})
	_, err := c.Execute(context.Background(), ShopQuery, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestExecuteCanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Execute(ctx, ShopQuery, nil)
	assert.Error(t, err)
}

func TestNewSellingPlanGroupInput(t *testing.T) {
	in := NewSellingPlanGroupInput(domain.DefaultSellingPlanGroup())
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	plans := decoded["sellingPlansToCreate"].([]interface{})
	require.Len(t, plans, 3)
	first := plans[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"1 Week(s)"}, first["options"])
	assert.NotContains(t, first, "id")
	pricing := first["pricingPolicies"].([]interface{})[0].(map[string]interface{})["fixed"].(map[string]interface{})
	assert.Equal(t, "PERCENTAGE", pricing["adjustmentType"])
	assert.Equal(t, 15.0, pricing["adjustmentValue"].(map[string]interface{})["percentage"])
}
