package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/config"
)

const (
	testAPIKey    = "api-key"
	testAPISecret = "api-secret"
	testShop      = "acme.myshopify.com"
)

var testShopifyConfig = config.ShopifyConfig{
	ShopDomain: "https://" + testShop,
	APIKey:     testAPIKey,
	APISecret:  testAPISecret,
}

func signSessionToken(t *testing.T, secret, aud, dest string, exp time.Time) string {
	t.Helper()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    dest + "/admin",
			Audience:  jwt.ClaimStrings{aud},
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Minute)),
		},
		Dest: dest,
		SID:  "session-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestSessionTokenVerifier(t *testing.T) {
	verifier := NewSessionTokenVerifier(testShopifyConfig)
	valid := time.Now().Add(time.Minute)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", signSessionToken(t, testAPISecret, testAPIKey, "https://"+testShop, valid), false},
		{"wrong secret", signSessionToken(t, "other", testAPIKey, "https://"+testShop, valid), true},
		{"wrong audience", signSessionToken(t, testAPISecret, "other-app", "https://"+testShop, valid), true},
		{"other shop", signSessionToken(t, testAPISecret, testAPIKey, "https://evil.myshopify.com", valid), true},
		{"expired", signSessionToken(t, testAPISecret, testAPIKey, "https://"+testShop, time.Now().Add(-time.Minute)), true},
		{"garbage", "not-a-jwt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, shop, err := verifier.Verify(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testShop, shop)
			assert.Equal(t, "session-1", claims.SID)
		})
	}
}

func TestSessionTokenVerifier_RejectsNoneAlgorithm(t *testing.T) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{testAPIKey},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Dest: "https://" + testShop,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = NewSessionTokenVerifier(testShopifyConfig).Verify(token)
	assert.Error(t, err)
}

func newSessionTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionTokenMiddleware(NewSessionTokenVerifier(testShopifyConfig), zap.NewNop()))
	router.GET("/whoami", func(c *gin.Context) {
		shop, ok := GetShopFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, shop)
	})
	return router
}

func TestSessionTokenMiddleware(t *testing.T) {
	router := newSessionTestRouter()
	token := signSessionToken(t, testAPISecret, testAPIKey, "https://"+testShop, time.Now().Add(time.Minute))

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testShop, rec.Body.String())
	})

	t.Run("id_token query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami?id_token="+token, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing session token")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
