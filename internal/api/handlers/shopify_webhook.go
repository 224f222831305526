package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	TopicSellingPlanGroupsCreate = "selling_plan_groups/create"
	TopicSellingPlanGroupsUpdate = "selling_plan_groups/update"
	TopicSellingPlanGroupsDelete = "selling_plan_groups/delete"
	TopicAppUninstalled          = "app/uninstalled"
)

type sellingPlanGroupWebhookBody struct {
	AdminGraphQLAPIID string `json:"admin_graphql_api_id"`
	Name              string `json:"name"`
	MerchantCode      string `json:"merchant_code"`
	Products          []struct {
		AdminGraphQLAPIID string `json:"admin_graphql_api_id"`
	} `json:"products"`
}

func verifyShopifyHMAC(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	// constant-time compare
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(header)))
}

// HandleShopifyWebhook handles POST /webhooks/shopify.
// Configure Shopify webhook topics:
// - selling_plan_groups/create, selling_plan_groups/update, selling_plan_groups/delete
// - app/uninstalled
// Shopify signs the raw body with the app's API secret.
func HandleShopifyWebhook(secret string, logger *zap.Logger) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	return func(c *gin.Context) {
		if secret == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shopify webhook not configured"})
			return
		}

		// Read raw body (Shopify HMAC is computed over raw bytes)
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		if !verifyShopifyHMAC(secret, bodyBytes, c.GetHeader("X-Shopify-Hmac-Sha256")) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
			return
		}

		topic := c.GetHeader("X-Shopify-Topic")
		shop := c.GetHeader("X-Shopify-Shop-Domain")

		switch topic {
		case TopicSellingPlanGroupsCreate, TopicSellingPlanGroupsUpdate, TopicSellingPlanGroupsDelete:
			var body sellingPlanGroupWebhookBody
			if err := json.Unmarshal(bodyBytes, &body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON", "details": err.Error()})
				return
			}
			logger.Info("Selling plan group changed",
				zap.String("topic", topic),
				zap.String("shop", shop),
				zap.String("selling_plan_group_id", body.AdminGraphQLAPIID),
				zap.String("name", body.Name),
				zap.Int("products", len(body.Products)),
			)
		case TopicAppUninstalled:
			logger.Warn("App uninstalled", zap.String("shop", shop))
		default:
			// Return 200 so Shopify doesn't keep retrying a topic we don't handle
			logger.Debug("Ignoring webhook topic", zap.String("topic", topic))
			c.JSON(http.StatusOK, gin.H{"ok": true, "status": "ignored", "topic": topic})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "topic": topic})
	}
}
