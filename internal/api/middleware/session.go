package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/config"
	"github.com/jafarshop/sellingplans/internal/shopify"
)

const ShopContextKey = "shop"

// SessionTokenContextKey holds the verified raw session token
const SessionTokenContextKey = "session_token"

// SessionClaims are the claims of a Shopify admin session token
type SessionClaims struct {
	jwt.RegisteredClaims
	Dest string `json:"dest"`
	SID  string `json:"sid,omitempty"`
}

// SessionTokenVerifier checks HS256 session tokens signed with the app's API secret
type SessionTokenVerifier struct {
	apiKey    string
	apiSecret []byte
	shop      string
}

// NewSessionTokenVerifier creates a verifier for tokens issued to the configured shop
func NewSessionTokenVerifier(cfg config.ShopifyConfig) *SessionTokenVerifier {
	return &SessionTokenVerifier{
		apiKey:    cfg.APIKey,
		apiSecret: []byte(cfg.APISecret),
		shop:      shopify.NormalizeShopDomain(cfg.ShopDomain),
	}
}

// Verify parses the token and returns its claims and the shop domain it was issued for
func (v *SessionTokenVerifier) Verify(tokenStr string) (*SessionClaims, string, error) {
	if len(v.apiSecret) == 0 {
		return nil, "", fmt.Errorf("verifier uninitialized")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if v.apiKey != "" {
		opts = append(opts, jwt.WithAudience(v.apiKey))
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return v.apiSecret, nil
	}, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, "", fmt.Errorf("invalid token")
	}

	dest, err := url.Parse(claims.Dest)
	if err != nil || dest.Host == "" {
		return nil, "", fmt.Errorf("token has no destination shop")
	}
	if v.shop != "" && !strings.EqualFold(dest.Host, v.shop) {
		return nil, "", fmt.Errorf("token issued for %s, not %s", dest.Host, v.shop)
	}
	return claims, dest.Host, nil
}

// SessionTokenMiddleware authenticates requests from the admin extension.
// The token is read from "Authorization: Bearer" or, for top-level navigations, the id_token query parameter.
func SessionTokenMiddleware(verifier *SessionTokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("id_token")
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
				c.Abort()
				return
			}
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			c.Abort()
			return
		}

		_, shop, err := verifier.Verify(tokenStr)
		if err != nil {
			logger.Warn("Rejected session token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session token"})
			c.Abort()
			return
		}

		c.Set(ShopContextKey, shop)
		c.Set(SessionTokenContextKey, tokenStr)
		c.Next()
	}
}

// GetShopFromContext retrieves the authenticated shop domain from the Gin context
func GetShopFromContext(c *gin.Context) (string, bool) {
	shop, exists := c.Get(ShopContextKey)
	if !exists {
		return "", false
	}
	s, ok := shop.(string)
	return s, ok
}

// GetSessionTokenFromContext returns the session token the request was authenticated with
func GetSessionTokenFromContext(c *gin.Context) string {
	return c.GetString(SessionTokenContextKey)
}
