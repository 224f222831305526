package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSellingPlanGroup(t *testing.T) {
	g := DefaultSellingPlanGroup()
	require.NoError(t, g.Validate())
	require.Len(t, g.SellingPlans, 3)

	wantPct := []float64{15, 10, 5}
	for i, sp := range g.SellingPlans {
		assert.Equal(t, i+1, sp.Position)
		assert.Equal(t, IntervalWeek, sp.BillingPolicy.Interval)
		assert.Equal(t, i+1, sp.BillingPolicy.IntervalCount)
		assert.Equal(t, sp.BillingPolicy, sp.DeliveryPolicy)
		require.Len(t, sp.PricingPolicies, 1)
		assert.Equal(t, AdjustmentPercentage, sp.PricingPolicies[0].AdjustmentType)
		assert.Equal(t, wantPct[i], sp.PricingPolicies[0].AdjustmentValue.Percentage)
	}
	assert.Equal(t, "Delivered every two weeks", g.SellingPlans[1].Name)
	assert.Equal(t, "3 Week(s)", g.SellingPlans[2].Options)
}

func TestSellingPlanGroupValidate(t *testing.T) {
	g := SellingPlanGroup{Name: "x", SellingPlans: []SellingPlan{WeeklyPlan(0, 1, decimal.NewFromInt(5))}}
	assert.Error(t, g.Validate())

	g = SellingPlanGroup{Name: "x", SellingPlans: []SellingPlan{WeeklyPlan(4, 1, decimal.NewFromInt(101))}}
	assert.Error(t, g.Validate())

	g = SellingPlanGroup{SellingPlans: nil}
	assert.Error(t, g.Validate())

	g = DefaultSellingPlanGroup()
	g.MerchantCode = ""
	assert.EqualError(t, g.Validate(), "selling plan group merchant code is required")
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("Admin::Product::SubscriptionPlan::Remove")
	require.True(t, ok)
	assert.Equal(t, ModeRemove, m)
	assert.Equal(t, "Admin::Product::SubscriptionPlan::Remove", m.ExtensionPoint())

	m, ok = ParseMode("Edit")
	assert.True(t, ok)
	assert.Equal(t, ModeEdit, m)

	_, ok = ParseMode("delete")
	assert.False(t, ok)
}
