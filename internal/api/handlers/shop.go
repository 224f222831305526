package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/api/middleware"
	"github.com/jafarshop/sellingplans/internal/i18n"
	"github.com/jafarshop/sellingplans/internal/repository"
	"github.com/jafarshop/sellingplans/internal/service"
	"github.com/jafarshop/sellingplans/internal/shopdata"
	"github.com/jafarshop/sellingplans/internal/shopify"
)

// IndexTemplate is the name the router registers the index page under
const IndexTemplate = "index"

// HandleIndex handles GET / and renders the shop name in the merchant's locale
func HandleIndex(client shopify.Executor, table *i18n.Table, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := shopdata.NewQuery(func(ctx context.Context) (string, error) {
			return service.ShopName(ctx, client)
		})
		if err := query.Run(c.Request.Context()); err != nil {
			logger.Warn("Shop query failed", zap.Error(err))
		}

		c.HTML(http.StatusOK, IndexTemplate, gin.H{
			"Greeting": table.Greeting(c.Query("locale")),
			"Shop":     query.Text(),
			"IDToken":  middleware.GetSessionTokenFromContext(c),
		})
	}
}

// HandleGetShop handles GET /api/shop
func HandleGetShop(client shopify.Executor, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, err := service.ShopName(c.Request.Context(), client)
		if err != nil {
			logger.Error("Failed to get shop", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name})
	}
}

// HandleListSellingPlanGroups handles GET /api/selling-plan-groups
func HandleListSellingPlanGroups(svc *service.SellingPlanService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if l := c.Query("limit"); l != "" {
			parsed, err := strconv.Atoi(l)
			if err != nil || parsed < 1 || parsed > 250 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 250"})
				return
			}
			limit = parsed
		}

		groups, err := svc.ListGroups(c.Request.Context(), limit)
		if err != nil {
			logger.Error("Failed to list selling plan groups", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to list selling plan groups"})
			return
		}

		items := make([]gin.H, 0, len(groups))
		for _, g := range groups {
			items = append(items, gin.H{
				"id":           g.ID,
				"name":         g.Name,
				"merchantCode": g.MerchantCode,
			})
		}
		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

// HandleListActionEvents handles GET /api/action-events?productId=...
func HandleListActionEvents(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, _ := middleware.GetShopFromContext(c)
		productID := c.Query("productId")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
			return
		}

		events, err := repos.ActionEvent.ListByProductID(c.Request.Context(), shop, productID, 20)
		if err != nil {
			logger.Error("Failed to list action events", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": events})
	}
}
