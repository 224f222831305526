package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExtensionContext is the data the admin host hands to one extension session.
// It does not change while the session is open.
type ExtensionContext struct {
	ProductID          string   `json:"productId"`
	VariantID          string   `json:"variantId,omitempty"`
	VariantIDs         []string `json:"variantIds,omitempty"`
	SellingPlanGroupID string   `json:"sellingPlanGroupId,omitempty"`
}

// SellingPlanGroup is a named collection of selling plans sharing options
type SellingPlanGroup struct {
	ID           string        `json:"id,omitempty"`
	Name         string        `json:"name"`
	MerchantCode string        `json:"merchantCode"`
	Options      []string      `json:"options"`
	Position     int           `json:"position,omitempty"`
	SellingPlans []SellingPlan `json:"sellingPlans,omitempty"`
}

// SellingPlan is a single recurring-purchase offer
type SellingPlan struct {
	ID              string          `json:"id,omitempty"`
	Name            string          `json:"name"`
	Options         string          `json:"options"`
	Position        int             `json:"position"`
	BillingPolicy   RecurringPolicy `json:"billingPolicy"`
	DeliveryPolicy  RecurringPolicy `json:"deliveryPolicy"`
	PricingPolicies []PricingPolicy `json:"pricingPolicies"`
}

// RecurringPolicy is used for both billing and delivery cadence
type RecurringPolicy struct {
	Interval      Interval `json:"interval"`
	IntervalCount int      `json:"intervalCount"`
}

// PricingPolicy is a fixed price adjustment applied to a selling plan
type PricingPolicy struct {
	AdjustmentType  AdjustmentType  `json:"adjustmentType"`
	AdjustmentValue AdjustmentValue `json:"adjustmentValue"`
}

type AdjustmentValue struct {
	Percentage float64 `json:"percentage"`
}

// UserError mirrors the userErrors entries returned by Admin API mutations
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// ActionEvent is an audit record of one extension action handled by the server
type ActionEvent struct {
	ID                 uuid.UUID   `json:"id"`
	Shop               string      `json:"shop"`
	Mode               Mode        `json:"mode"`
	ProductID          string      `json:"productId"`
	SellingPlanGroupID string      `json:"sellingPlanGroupId,omitempty"`
	Succeeded          bool        `json:"succeeded"`
	UserErrors         []UserError `json:"userErrors"` // JSONB
	CreatedAt          time.Time   `json:"createdAt"`
}

// IdempotencyRecord stores the response of a request made with an Idempotency-Key
type IdempotencyRecord struct {
	Key         string
	Shop        string
	RequestHash string
	StatusCode  int
	Response    []byte
	CreatedAt   time.Time
}
