package extension

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/sellingplans/internal/domain"
)

// PayloadBuilder turns the session context and form into the request body.
// Builders are pure: the same inputs always produce the same value.
type PayloadBuilder func(data domain.ExtensionContext, form Form) (interface{}, error)

// ModeSpec describes how one mode talks to the app server
type ModeSpec struct {
	Kind        domain.Mode
	ActionLabel string
	Method      string
	Path        string
	Build       PayloadBuilder
}

var modeSpecs = map[domain.Mode]ModeSpec{
	domain.ModeAdd: {
		Kind:        domain.ModeAdd,
		ActionLabel: "Add to plan",
		Method:      http.MethodPost,
		Path:        "/add",
		Build:       buildAdd,
	},
	domain.ModeCreate: {
		Kind:        domain.ModeCreate,
		ActionLabel: "Create plan",
		Method:      http.MethodPost,
		Path:        "/create",
		Build:       buildCreate,
	},
	domain.ModeRemove: {
		Kind:        domain.ModeRemove,
		ActionLabel: "Remove from plan",
		Method:      http.MethodPost,
		Path:        "/remove",
		Build:       buildRemove,
	},
	domain.ModeEdit: {
		Kind:        domain.ModeEdit,
		ActionLabel: "Edit plan",
		Method:      http.MethodPost,
		Path:        "/edit",
		Build:       buildEdit,
	},
}

// Spec returns the spec of a mode
func Spec(mode domain.Mode) (ModeSpec, bool) {
	s, ok := modeSpecs[mode]
	return s, ok
}

type addPayload struct {
	ProductID           string   `json:"productId"`
	VariantID           string   `json:"variantId,omitempty"`
	SellingPlanGroupIDs []string `json:"sellingPlanGroupIds,omitempty"`
}

type createPayload struct {
	ProductID         string          `json:"productId"`
	VariantID         string          `json:"variantId,omitempty"`
	PlanTitle         string          `json:"planTitle"`
	PercentageOff     decimal.Decimal `json:"percentageOff"`
	DeliveryFrequency int             `json:"deliveryFrequency"`
}

type removePayload struct {
	SellingPlanGroupID string   `json:"sellingPlanGroupId"`
	ProductID          string   `json:"productId"`
	VariantID          string   `json:"variantId,omitempty"`
	VariantIDs         []string `json:"variantIds,omitempty"`
}

type editPayload struct {
	SellingPlanGroupID string          `json:"sellingPlanGroupId"`
	ProductID          string          `json:"productId"`
	VariantID          string          `json:"variantId,omitempty"`
	PlanTitle          string          `json:"planTitle"`
	PercentageOff      decimal.Decimal `json:"percentageOff"`
	DeliveryFrequency  int             `json:"deliveryFrequency"`
}

func buildAdd(data domain.ExtensionContext, form Form) (interface{}, error) {
	return addPayload{
		ProductID:           data.ProductID,
		VariantID:           data.VariantID,
		SellingPlanGroupIDs: form.SelectedPlans,
	}, nil
}

func buildCreate(data domain.ExtensionContext, form Form) (interface{}, error) {
	title, pct, weeks, err := form.planSettings()
	if err != nil {
		return nil, err
	}
	return createPayload{
		ProductID:         data.ProductID,
		VariantID:         data.VariantID,
		PlanTitle:         title,
		PercentageOff:     pct,
		DeliveryFrequency: weeks,
	}, nil
}

func buildRemove(data domain.ExtensionContext, _ Form) (interface{}, error) {
	return removePayload{
		SellingPlanGroupID: data.SellingPlanGroupID,
		ProductID:          data.ProductID,
		VariantID:          data.VariantID,
		VariantIDs:         data.VariantIDs,
	}, nil
}

func buildEdit(data domain.ExtensionContext, form Form) (interface{}, error) {
	title, pct, weeks, err := form.planSettings()
	if err != nil {
		return nil, err
	}
	return editPayload{
		SellingPlanGroupID: data.SellingPlanGroupID,
		ProductID:          data.ProductID,
		VariantID:          data.VariantID,
		PlanTitle:          title,
		PercentageOff:      pct,
		DeliveryFrequency:  weeks,
	}, nil
}
