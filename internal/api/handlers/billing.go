package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/service"
	"github.com/jafarshop/sellingplans/pkg/errors"
)

// HandleSellingPlanGroupRedirect handles GET /billing/selling-plan-group
func HandleSellingPlanGroupRedirect(billing *service.BillingService, logger *zap.Logger) gin.HandlerFunc {
	return redirectToConfirmation("appSellingPlanGroupCreate", billing.GroupCreateURL, logger)
}

// HandleOneTimeChargeRedirect handles GET /billing/one-time
func HandleOneTimeChargeRedirect(billing *service.BillingService, logger *zap.Logger) gin.HandlerFunc {
	return redirectToConfirmation("appPurchaseOneTimeCreate", billing.OneTimeURL, logger)
}

// HandleSubscriptionRedirect handles GET /billing/subscription
func HandleSubscriptionRedirect(billing *service.BillingService, logger *zap.Logger) gin.HandlerFunc {
	return redirectToConfirmation("appSubscriptionCreate", billing.SubscriptionURL, logger)
}

func redirectToConfirmation(mutation string, confirmationURL func(context.Context) (string, error), logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := confirmationURL(c.Request.Context())
		if err != nil {
			var (
				userErrs   *errors.ErrUserErrors
				validation *errors.ErrValidation
			)
			switch {
			case stderrors.As(err, &userErrs):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "shopify rejected the request", "userErrors": userErrs.Errors})
			case stderrors.As(err, &validation):
				logger.Error("Billing is misconfigured", zap.String("mutation", mutation), zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": validation.Error()})
			default:
				logger.Error("Failed to obtain confirmation URL", zap.String("mutation", mutation), zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "shopify request failed"})
			}
			return
		}

		c.Redirect(http.StatusFound, url)
	}
}
