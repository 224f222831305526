package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/service"
	"github.com/jafarshop/sellingplans/pkg/errors"
)

// actionFunc runs one extension mode against Shopify
type actionFunc[T any] func(ctx context.Context, req T) (*service.ActionResult, error)

// HandleAddProduct handles POST /api/extension/add
func HandleAddProduct(svc *service.SellingPlanService, logger *zap.Logger) gin.HandlerFunc {
	return handleAction[service.AddProductRequest](domain.ModeAdd, svc.AddProduct, logger)
}

// HandleCreateGroup handles POST /api/extension/create
func HandleCreateGroup(svc *service.SellingPlanService, logger *zap.Logger) gin.HandlerFunc {
	return handleAction[service.CreateGroupRequest](domain.ModeCreate, svc.CreateGroup, logger)
}

// HandleRemoveProduct handles POST /api/extension/remove
func HandleRemoveProduct(svc *service.SellingPlanService, logger *zap.Logger) gin.HandlerFunc {
	return handleAction[service.RemoveProductRequest](domain.ModeRemove, svc.RemoveProduct, logger)
}

// HandleEditGroup handles POST /api/extension/edit
func HandleEditGroup(svc *service.SellingPlanService, logger *zap.Logger) gin.HandlerFunc {
	return handleAction[service.EditGroupRequest](domain.ModeEdit, svc.EditGroup, logger)
}

func handleAction[T any](mode domain.Mode, run actionFunc[T], logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":         false,
				"error":      "invalid request body",
				"details":    err.Error(),
				"userErrors": []domain.UserError{},
			})
			return
		}

		result, err := run(c.Request.Context(), req)
		if err != nil {
			writeActionError(c, mode, err, logger)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":                 true,
			"sellingPlanGroupId": result.SellingPlanGroupID,
			"userErrors":         []domain.UserError{},
		})
	}
}

// writeActionError maps service errors onto the response the extension parses
func writeActionError(c *gin.Context, mode domain.Mode, err error, logger *zap.Logger) {
	var (
		userErrs   *errors.ErrUserErrors
		validation *errors.ErrValidation
		notFound   *errors.ErrNotFound
	)
	switch {
	case stderrors.As(err, &userErrs):
		logger.Info("Shopify rejected extension action",
			zap.String("mode", string(mode)),
			zap.String("user_errors", userErrs.Error()),
		)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"ok":         false,
			"userErrors": userErrs.Errors,
		})
	case stderrors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":         false,
			"error":      validation.Error(),
			"fields":     validation.Fields,
			"userErrors": []domain.UserError{},
		})
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{
			"ok":         false,
			"error":      notFound.Error(),
			"userErrors": []domain.UserError{},
		})
	default:
		logger.Error("Extension action failed", zap.String("mode", string(mode)), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"ok":         false,
			"error":      "shopify request failed",
			"userErrors": []domain.UserError{},
		})
	}
}
