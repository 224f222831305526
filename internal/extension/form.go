package extension

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/pkg/errors"
)

// Plan is an entry of the Add form's plan picker
type Plan struct {
	ID   string
	Name string
}

// MockPlans are offered by the Add form until groups are loaded from the server
var MockPlans = []Plan{
	{ID: "a", Name: "Subscription Plan A"},
	{ID: "b", Name: "Subscription Plan B"},
	{ID: "c", Name: "Subscription Plan C"},
}

// Form is the session-local form state. Fields hold raw text as typed by the merchant.
type Form struct {
	PlanTitle         string
	PercentageOff     string
	DeliveryFrequency string
	SelectedPlans     []string
}

// DefaultForm returns the initial form of a mode
func DefaultForm(mode domain.Mode) Form {
	switch mode {
	case domain.ModeCreate:
		return Form{PlanTitle: "a", PercentageOff: "4", DeliveryFrequency: "4"}
	case domain.ModeEdit:
		return Form{PlanTitle: "Current plan", PercentageOff: "10", DeliveryFrequency: "1"}
	default:
		return Form{}
	}
}

// TogglePlan checks or unchecks a plan in the Add form
func (f *Form) TogglePlan(id string, checked bool) {
	kept := f.SelectedPlans[:0:0]
	for _, p := range f.SelectedPlans {
		if p != id {
			kept = append(kept, p)
		}
	}
	if checked {
		kept = append(kept, id)
	}
	f.SelectedPlans = kept
}

// IsSelected reports whether a plan is checked
func (f Form) IsSelected(id string) bool {
	for _, p := range f.SelectedPlans {
		if p == id {
			return true
		}
	}
	return false
}

// planSettings parses the Create/Edit fields
func (f Form) planSettings() (string, decimal.Decimal, int, error) {
	fields := map[string]string{}

	title := strings.TrimSpace(f.PlanTitle)
	if title == "" {
		fields["planTitle"] = "required"
	}

	pct, err := decimal.NewFromString(strings.TrimSpace(f.PercentageOff))
	if err != nil {
		fields["percentageOff"] = "must be a number"
	} else if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		fields["percentageOff"] = "must be between 0 and 100"
	}

	weeks, err := strconv.Atoi(strings.TrimSpace(f.DeliveryFrequency))
	if err != nil || weeks < 1 {
		fields["deliveryFrequency"] = "must be a positive number of weeks"
	}

	if len(fields) > 0 {
		return "", decimal.Zero, 0, &errors.ErrValidation{Message: "invalid plan settings", Fields: fields}
	}
	return title, pct, weeks, nil
}
