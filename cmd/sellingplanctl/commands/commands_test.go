package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/extension"
)

func TestRunAction_AddSendsSelectedPlans(t *testing.T) {
	logger = zap.NewNop()
	var (
		gotPath, gotAuth string
		gotBody          map[string]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"userErrors":[]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	res, err := runAction(context.Background(), domain.ModeAdd, &actionOptions{
		endpoint:  srv.URL + "/api/extension",
		token:     "static-token",
		locale:    "fr",
		productID: "gid://shopify/Product/1",
		plans:     []string{"g1", " g2"},
		offered:   []extension.Plan{{ID: "g1", Name: "Weekly"}, {ID: "g2", Name: "Monthly"}, {ID: "g3", Name: "Yearly"}},
	}, &out)
	require.NoError(t, err)
	require.NoError(t, res.Err)

	assert.Equal(t, "/api/extension/add", gotPath)
	assert.Equal(t, "Bearer static-token", gotAuth)
	assert.Equal(t, []interface{}{"g1", "g2"}, gotBody["sellingPlanGroupIds"])
	assert.Equal(t, "Bonjour!\nAdd Product id gid://shopify/Product/1 to an existing plan or existing plans\n"+
		"[x] Weekly (g1)\n[x] Monthly (g2)\n[ ] Yearly (g3)\n"+
		"> Add to plan\ndone\n", out.String())
}

func TestRunAction_AddOffersMockPlansByDefault(t *testing.T) {
	logger = zap.NewNop()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"userErrors":[]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	_, err := runAction(context.Background(), domain.ModeAdd, &actionOptions{
		endpoint:  srv.URL,
		token:     "t",
		productID: "p1",
		plans:     []string{"b"},
	}, &out)
	require.NoError(t, err)
	for _, p := range extension.MockPlans {
		mark := "[ ]"
		if p.ID == "b" {
			mark = "[x]"
		}
		assert.Contains(t, out.String(), mark+" "+p.Name+" ("+p.ID+")\n")
	}
}

func TestRunAction_MissingTokenClosesWithoutRequest(t *testing.T) {
	logger = zap.NewNop()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	var out bytes.Buffer
	res, err := runAction(context.Background(), domain.ModeRemove, &actionOptions{
		endpoint:  srv.URL,
		productID: "p1",
		groupID:   "g1",
	}, &out)
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.Zero(t, hits)
	assert.Contains(t, out.String(), "failed: ")
	assert.NotContains(t, out.String(), "done")
}

func TestRunAction_CreateFormFlags(t *testing.T) {
	logger = zap.NewNop()
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"ok":true,"sellingPlanGroupId":"gid://shopify/SellingPlanGroup/3","userErrors":[]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	res, err := runAction(context.Background(), domain.ModeCreate, &actionOptions{
		endpoint:   srv.URL,
		token:      "t",
		productID:  "p1",
		title:      "Weekly",
		percentOff: "12.5",
		frequency:  "2",
	}, &out)
	require.NoError(t, err)
	require.True(t, res.OK())

	assert.Equal(t, "Weekly", gotBody["planTitle"])
	assert.Equal(t, "12.5", gotBody["percentageOff"])
	assert.Equal(t, float64(2), gotBody["deliveryFrequency"])
	assert.Contains(t, out.String(), "selling plan group: gid://shopify/SellingPlanGroup/3")
}

func TestActionCommandRejectsUnknownMode(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"action", "delete", "--product", "p1"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mode "delete"`)
}
