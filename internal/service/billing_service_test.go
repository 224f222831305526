package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/sellingplans/internal/config"
	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/shopify"
	"github.com/jafarshop/sellingplans/pkg/errors"
)

func TestGroupCreateURL(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"appSellingPlanGroupCreate":{"confirmationUrl":"https://x/y"}}`,
	}}
	svc := NewBillingService(exec, config.AppConfig{}, nil)

	url, err := svc.GroupCreateURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://x/y", url)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, shopify.AppSellingPlanGroupCreateMutation, exec.calls[0].Query)
	input, ok := exec.calls[0].Variables["input"].(shopify.SellingPlanGroupInput)
	require.True(t, ok)
	assert.Equal(t, domain.DefaultGroupName, input.Name)
	require.Len(t, input.SellingPlansToCreate, 3)
}

func TestGroupCreateURL_UserErrors(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"appSellingPlanGroupCreate":{"confirmationUrl":null,"userErrors":[{"field":["input"],"message":"bad"}]}}`,
	}}
	svc := NewBillingService(exec, config.AppConfig{}, nil)

	_, err := svc.GroupCreateURL(context.Background())
	var userErrs *errors.ErrUserErrors
	require.True(t, stderrors.As(err, &userErrs))
}

func TestGroupCreateURL_MissingURL(t *testing.T) {
	exec := &fakeExecutor{responses: []string{`{"appSellingPlanGroupCreate":{"userErrors":[]}}`}}
	svc := NewBillingService(exec, config.AppConfig{}, nil)

	_, err := svc.GroupCreateURL(context.Background())
	require.Error(t, err)
}

func TestOneTimeURL(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"appPurchaseOneTimeCreate":{"confirmationUrl":"https://confirm/one","userErrors":[]}}`,
	}}
	svc := NewBillingService(exec, config.AppConfig{Host: "https://app.example.com", TestCharges: true}, nil)

	url, err := svc.OneTimeURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://confirm/one", url)

	vars := exec.calls[0].Variables
	assert.Equal(t, "Subscription app setup", vars["name"])
	assert.Equal(t, "https://app.example.com/", vars["returnUrl"])
	assert.Equal(t, true, vars["test"])
	assert.Equal(t, shopify.MoneyInput{Amount: "10.00", CurrencyCode: "USD"}, vars["price"])
}

func TestSubscriptionURL(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"appSubscriptionCreate":{"confirmationUrl":"https://confirm/sub","userErrors":[]}}`,
	}}
	svc := NewBillingService(exec, config.AppConfig{Host: "https://app.example.com"}, nil)

	url, err := svc.SubscriptionURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://confirm/sub", url)

	lineItems, ok := exec.calls[0].Variables["lineItems"].([]shopify.AppSubscriptionLineItemInput)
	require.True(t, ok)
	require.Len(t, lineItems, 1)
	assert.Equal(t, "EVERY_30_DAYS", lineItems[0].Plan.AppRecurringPricingDetails.Interval)
}

func TestBillingRequiresHost(t *testing.T) {
	exec := &fakeExecutor{}
	svc := NewBillingService(exec, config.AppConfig{}, nil)

	_, err := svc.SubscriptionURL(context.Background())
	var validation *errors.ErrValidation
	require.True(t, stderrors.As(err, &validation))
	assert.Empty(t, exec.calls)
}
