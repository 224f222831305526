package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultGroupName         = "Subscribe and save"
	DefaultGroupMerchantCode = "subscribe-and-save"
	DefaultGroupOption       = "Delivery every"
)

// WeeklyPlan builds a plan billed and delivered every n weeks with a percentage discount
func WeeklyPlan(weeks, position int, percentOff decimal.Decimal) SellingPlan {
	name := "Delivered every week"
	switch weeks {
	case 1:
	case 2:
		name = "Delivered every two weeks"
	case 3:
		name = "Delivered every three weeks"
	default:
		name = fmt.Sprintf("Delivered every %d weeks", weeks)
	}
	policy := RecurringPolicy{Interval: IntervalWeek, IntervalCount: weeks}
	return SellingPlan{
		Name:           name,
		Options:        fmt.Sprintf("%d Week(s)", weeks),
		Position:       position,
		BillingPolicy:  policy,
		DeliveryPolicy: policy,
		PricingPolicies: []PricingPolicy{
			PercentageOff(percentOff),
		},
	}
}

// PercentageOff builds a PERCENTAGE pricing policy
func PercentageOff(p decimal.Decimal) PricingPolicy {
	return PricingPolicy{
		AdjustmentType:  AdjustmentPercentage,
		AdjustmentValue: AdjustmentValue{Percentage: p.InexactFloat64()},
	}
}

// DefaultSellingPlanGroup is the three-tier group offered on install:
// weekly 15% off, every two weeks 10% off, every three weeks 5% off.
func DefaultSellingPlanGroup() SellingPlanGroup {
	return SellingPlanGroup{
		Name:         DefaultGroupName,
		MerchantCode: DefaultGroupMerchantCode,
		Options:      []string{DefaultGroupOption},
		Position:     1,
		SellingPlans: []SellingPlan{
			WeeklyPlan(1, 1, decimal.NewFromInt(15)),
			WeeklyPlan(2, 2, decimal.NewFromInt(10)),
			WeeklyPlan(3, 3, decimal.NewFromInt(5)),
		},
	}
}

// Validate checks the recurring policy
func (p RecurringPolicy) Validate() error {
	if !p.Interval.IsValid() {
		return fmt.Errorf("invalid interval %q", p.Interval)
	}
	if p.IntervalCount < 1 {
		return fmt.Errorf("interval count must be positive, got %d", p.IntervalCount)
	}
	return nil
}

// Validate checks every plan of the group
func (g SellingPlanGroup) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("selling plan group name is required")
	}
	if g.MerchantCode == "" {
		return fmt.Errorf("selling plan group merchant code is required")
	}
	for _, sp := range g.SellingPlans {
		if err := sp.BillingPolicy.Validate(); err != nil {
			return fmt.Errorf("plan %q billing policy: %w", sp.Name, err)
		}
		if err := sp.DeliveryPolicy.Validate(); err != nil {
			return fmt.Errorf("plan %q delivery policy: %w", sp.Name, err)
		}
		for _, pp := range sp.PricingPolicies {
			if pp.AdjustmentType == AdjustmentPercentage && (pp.AdjustmentValue.Percentage < 0 || pp.AdjustmentValue.Percentage > 100) {
				return fmt.Errorf("plan %q percentage must be between 0 and 100", sp.Name)
			}
		}
	}
	return nil
}
