package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/config"
	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/shopify"
	"github.com/jafarshop/sellingplans/pkg/errors"
)

const (
	oneTimeChargeName   = "Subscription app setup"
	subscriptionName    = "Super Duper Plan"
	chargeCurrency      = "USD"
	subscriptionCadence = "EVERY_30_DAYS"
)

var chargeAmount = decimal.NewFromInt(10)

// BillingService builds the confirmation URLs the merchant is redirected to
type BillingService struct {
	client shopify.Executor
	app    config.AppConfig
	logger *zap.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(client shopify.Executor, app config.AppConfig, logger *zap.Logger) *BillingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingService{client: client, app: app, logger: logger}
}

type confirmationPayload struct {
	ConfirmationURL string             `json:"confirmationUrl"`
	UserErrors      []domain.UserError `json:"userErrors"`
}

func (s *BillingService) confirm(ctx context.Context, field, mutation string, variables map[string]interface{}) (string, error) {
	resp, err := s.client.Execute(ctx, mutation, variables)
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	var data map[string]*confirmationPayload
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("parse %s response: %w", field, err)
	}
	payload := data[field]
	if payload == nil {
		return "", fmt.Errorf("%s: empty response", field)
	}
	if err := errors.UserErrors(payload.UserErrors); err != nil {
		return "", err
	}
	if payload.ConfirmationURL == "" {
		return "", fmt.Errorf("%s: no confirmationUrl in response", field)
	}
	s.logger.Info("Obtained confirmation URL", zap.String("mutation", field))
	return payload.ConfirmationURL, nil
}

// GroupCreateURL creates the default three-tier selling plan group and returns its confirmation URL
func (s *BillingService) GroupCreateURL(ctx context.Context) (string, error) {
	group := domain.DefaultSellingPlanGroup()
	if err := group.Validate(); err != nil {
		return "", &errors.ErrValidation{Message: err.Error()}
	}
	return s.confirm(ctx, "appSellingPlanGroupCreate", shopify.AppSellingPlanGroupCreateMutation, map[string]interface{}{
		"input": shopify.NewSellingPlanGroupInput(group),
		"resources": shopify.SellingPlanGroupResourceInput{
			ProductIDs:        []string{},
			ProductVariantIDs: []string{},
		},
	})
}

// OneTimeURL creates a one-time app charge
func (s *BillingService) OneTimeURL(ctx context.Context) (string, error) {
	returnURL, err := s.returnURL()
	if err != nil {
		return "", err
	}
	return s.confirm(ctx, "appPurchaseOneTimeCreate", shopify.AppPurchaseOneTimeCreateMutation, map[string]interface{}{
		"name":      oneTimeChargeName,
		"price":     shopify.MoneyInput{Amount: chargeAmount.StringFixed(2), CurrencyCode: chargeCurrency},
		"returnUrl": returnURL,
		"test":      s.app.TestCharges,
	})
}

// SubscriptionURL creates a recurring app charge
func (s *BillingService) SubscriptionURL(ctx context.Context) (string, error) {
	returnURL, err := s.returnURL()
	if err != nil {
		return "", err
	}
	return s.confirm(ctx, "appSubscriptionCreate", shopify.AppSubscriptionCreateMutation, map[string]interface{}{
		"name":      subscriptionName,
		"returnUrl": returnURL,
		"test":      s.app.TestCharges,
		"lineItems": []shopify.AppSubscriptionLineItemInput{{
			Plan: shopify.AppPlanInput{AppRecurringPricingDetails: shopify.AppRecurringPricingInput{
				Price:    shopify.MoneyInput{Amount: chargeAmount.StringFixed(2), CurrencyCode: chargeCurrency},
				Interval: subscriptionCadence,
			}},
		}},
	})
}

func (s *BillingService) returnURL() (string, error) {
	if s.app.Host == "" {
		return "", &errors.ErrValidation{Message: "APP_HOST is not configured"}
	}
	return s.app.Host + "/", nil
}
