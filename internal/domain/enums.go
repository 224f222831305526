package domain

import "strings"

// Mode is the lifecycle operation an extension session performs on a product's plans
type Mode string

const (
	// ModeAdd attaches the product to existing selling plan groups (modal)
	ModeAdd Mode = "add"
	// ModeCreate creates a new group and attaches the product to it (app overlay)
	ModeCreate Mode = "create"
	// ModeRemove detaches the product from a group without deleting it (modal)
	ModeRemove Mode = "remove"
	// ModeEdit changes an existing group; affects every product using it (app overlay)
	ModeEdit Mode = "edit"
)

// Modes lists every mode in the order the host registers them
var Modes = []Mode{ModeAdd, ModeCreate, ModeRemove, ModeEdit}

// IsValid checks if the mode is known
func (m Mode) IsValid() bool {
	switch m {
	case ModeAdd, ModeCreate, ModeRemove, ModeEdit:
		return true
	default:
		return false
	}
}

// ParseMode accepts "add", "Add" or the host target "Admin::Product::SubscriptionPlan::Add"
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "::"); i >= 0 {
		s = s[i+2:]
	}
	m := Mode(strings.ToLower(s))
	return m, m.IsValid()
}

// ExtensionPoint returns the admin target the mode is rendered for
func (m Mode) ExtensionPoint() string {
	if !m.IsValid() {
		return ""
	}
	return "Admin::Product::SubscriptionPlan::" + strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Interval is the unit of a recurring policy
type Interval string

const (
	IntervalDay   Interval = "DAY"
	IntervalWeek  Interval = "WEEK"
	IntervalMonth Interval = "MONTH"
	IntervalYear  Interval = "YEAR"
)

// IsValid checks if the interval is valid
func (i Interval) IsValid() bool {
	switch i {
	case IntervalDay, IntervalWeek, IntervalMonth, IntervalYear:
		return true
	default:
		return false
	}
}

// AdjustmentType is the kind of price adjustment of a pricing policy
type AdjustmentType string

// AdjustmentPercentage is the only adjustment the app's plans use
const AdjustmentPercentage AdjustmentType = "PERCENTAGE"
