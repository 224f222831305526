package service

import "github.com/shopspring/decimal"

// AddProductRequest is the payload the extension sends in Add mode
type AddProductRequest struct {
	ProductID           string   `json:"productId" binding:"required"`
	VariantID           string   `json:"variantId"`
	SellingPlanGroupIDs []string `json:"sellingPlanGroupIds"`
}

// CreateGroupRequest is the payload the extension sends in Create mode
type CreateGroupRequest struct {
	ProductID         string          `json:"productId" binding:"required"`
	VariantID         string          `json:"variantId"`
	PlanTitle         string          `json:"planTitle" binding:"required"`
	PercentageOff     decimal.Decimal `json:"percentageOff"`
	DeliveryFrequency int             `json:"deliveryFrequency" binding:"required,min=1"`
}

// RemoveProductRequest is the payload the extension sends in Remove mode
type RemoveProductRequest struct {
	SellingPlanGroupID string   `json:"sellingPlanGroupId" binding:"required"`
	ProductID          string   `json:"productId" binding:"required"`
	VariantID          string   `json:"variantId"`
	VariantIDs         []string `json:"variantIds"`
}

// EditGroupRequest is the payload the extension sends in Edit mode
type EditGroupRequest struct {
	SellingPlanGroupID string          `json:"sellingPlanGroupId" binding:"required"`
	ProductID          string          `json:"productId"`
	VariantID          string          `json:"variantId"`
	PlanTitle          string          `json:"planTitle" binding:"required"`
	PercentageOff      decimal.Decimal `json:"percentageOff"`
	DeliveryFrequency  int             `json:"deliveryFrequency" binding:"required,min=1"`
}

// ActionResult is returned to the extension for every mode
type ActionResult struct {
	SellingPlanGroupID string `json:"sellingPlanGroupId,omitempty"`
}
