package api

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/api/handlers"
	"github.com/jafarshop/sellingplans/internal/api/middleware"
	"github.com/jafarshop/sellingplans/internal/config"
	"github.com/jafarshop/sellingplans/internal/i18n"
	"github.com/jafarshop/sellingplans/internal/repository"
	"github.com/jafarshop/sellingplans/internal/service"
	"github.com/jafarshop/sellingplans/internal/shopify"
)

const indexHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Selling plans</title></head>
<body>
<h1>{{.Greeting}}</h1>
<p>{{.Shop}}</p>
<ul>
<li><a href="/billing/selling-plan-group?id_token={{.IDToken}}">Create selling plan group</a></li>
<li><a href="/billing/one-time?id_token={{.IDToken}}">One-time charge</a></li>
<li><a href="/billing/subscription?id_token={{.IDToken}}">Subscription</a></li>
</ul>
</body>
</html>`

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, client shopify.Executor, table *i18n.Table, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New(handlers.IndexTemplate).Parse(indexHTML)))

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware())

	sellingPlans := service.NewSellingPlanService(client, repos.ActionEvent, cfg.Shopify.ShopDomain, logger)
	billing := service.NewBillingService(client, cfg.App, logger)
	sessions := middleware.NewSessionTokenVerifier(cfg.Shopify)

	// The index is loaded inside the admin iframe with ?id_token= and hands it on to the billing links
	router.GET("/", middleware.SessionTokenMiddleware(sessions, logger), handlers.HandleIndex(client, table, logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Shopify webhooks: selling plan group changes made outside the extension, app uninstall
	router.POST("/webhooks/shopify", handlers.HandleShopifyWebhook(cfg.Shopify.APISecret, logger))

	// Billing redirects are top-level navigations, so the token arrives as ?id_token=
	billingRoutes := router.Group("/billing")
	billingRoutes.Use(middleware.SessionTokenMiddleware(sessions, logger))
	{
		billingRoutes.GET("/selling-plan-group", handlers.HandleSellingPlanGroupRedirect(billing, logger))
		billingRoutes.GET("/one-time", handlers.HandleOneTimeChargeRedirect(billing, logger))
		billingRoutes.GET("/subscription", handlers.HandleSubscriptionRedirect(billing, logger))
	}

	apiRoutes := router.Group("/api")
	apiRoutes.Use(middleware.SessionTokenMiddleware(sessions, logger))
	{
		apiRoutes.GET("/shop", handlers.HandleGetShop(client, logger))
		apiRoutes.GET("/selling-plan-groups", handlers.HandleListSellingPlanGroups(sellingPlans, logger))
		apiRoutes.GET("/action-events", handlers.HandleListActionEvents(repos, logger))

		// Extension actions, one per mode
		extensionRoutes := apiRoutes.Group("/extension")
		extensionRoutes.Use(middleware.IdempotencyMiddleware(repos, logger))
		{
			extensionRoutes.POST("/add", handlers.HandleAddProduct(sellingPlans, logger))
			extensionRoutes.POST("/create", handlers.HandleCreateGroup(sellingPlans, logger))
			extensionRoutes.POST("/remove", handlers.HandleRemoveProduct(sellingPlans, logger))
			extensionRoutes.POST("/edit", handlers.HandleEditGroup(sellingPlans, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

// corsMiddleware lets the admin extension, served from Shopify's origin, call /api
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+middleware.IdempotencyKeyHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
