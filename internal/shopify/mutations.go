package shopify

import "github.com/jafarshop/sellingplans/internal/domain"

// AppSellingPlanGroupCreateMutation creates a selling plan group that the merchant confirms
// through the returned confirmationUrl.
const AppSellingPlanGroupCreateMutation = `
mutation appSellingPlanGroupCreate($input: SellingPlanGroupInput!, $resources: SellingPlanGroupResourceInput) {
  appSellingPlanGroupCreate(input: $input, resources: $resources) {
    confirmationUrl
    sellingPlanGroup {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// SellingPlanGroupCreateMutation creates a group and attaches products/variants to it
const SellingPlanGroupCreateMutation = `
mutation sellingPlanGroupCreate($input: SellingPlanGroupInput!, $resources: SellingPlanGroupResourceInput) {
  sellingPlanGroupCreate(input: $input, resources: $resources) {
    sellingPlanGroup {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// SellingPlanGroupUpdateMutation updates a group; changes apply to every product in it
const SellingPlanGroupUpdateMutation = `
mutation sellingPlanGroupUpdate($id: ID!, $input: SellingPlanGroupInput!) {
  sellingPlanGroupUpdate(id: $id, input: $input) {
    sellingPlanGroup {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

const SellingPlanGroupAddProductsMutation = `
mutation sellingPlanGroupAddProducts($id: ID!, $productIds: [ID!]!) {
  sellingPlanGroupAddProducts(id: $id, productIds: $productIds) {
    sellingPlanGroup {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

const SellingPlanGroupAddProductVariantsMutation = `
mutation sellingPlanGroupAddProductVariants($id: ID!, $productVariantIds: [ID!]!) {
  sellingPlanGroupAddProductVariants(id: $id, productVariantIds: $productVariantIds) {
    sellingPlanGroup {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// SellingPlanGroupRemoveProductsMutation detaches products; the group itself is kept
const SellingPlanGroupRemoveProductsMutation = `
mutation sellingPlanGroupRemoveProducts($id: ID!, $productIds: [ID!]!) {
  sellingPlanGroupRemoveProducts(id: $id, productIds: $productIds) {
    removedProductIds
    userErrors {
      field
      message
    }
  }
}
`

const SellingPlanGroupRemoveProductVariantsMutation = `
mutation sellingPlanGroupRemoveProductVariants($id: ID!, $productVariantIds: [ID!]!) {
  sellingPlanGroupRemoveProductVariants(id: $id, productVariantIds: $productVariantIds) {
    removedProductVariantIds
    userErrors {
      field
      message
    }
  }
}
`

// AppPurchaseOneTimeCreateMutation creates a one-time app charge
const AppPurchaseOneTimeCreateMutation = `
mutation appPurchaseOneTimeCreate($name: String!, $price: MoneyInput!, $returnUrl: URL!, $test: Boolean) {
  appPurchaseOneTimeCreate(name: $name, price: $price, returnUrl: $returnUrl, test: $test) {
    confirmationUrl
    appPurchaseOneTime {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// AppSubscriptionCreateMutation creates a recurring app charge
const AppSubscriptionCreateMutation = `
mutation appSubscriptionCreate($name: String!, $returnUrl: URL!, $test: Boolean, $lineItems: [AppSubscriptionLineItemInput!]!) {
  appSubscriptionCreate(name: $name, returnUrl: $returnUrl, test: $test, lineItems: $lineItems) {
    confirmationUrl
    appSubscription {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// SellingPlanGroupInput is the GraphQL input for group create/update
type SellingPlanGroupInput struct {
	Name                 string             `json:"name,omitempty"`
	MerchantCode         string             `json:"merchantCode,omitempty"`
	Options              []string           `json:"options,omitempty"`
	Position             int                `json:"position,omitempty"`
	SellingPlansToCreate []SellingPlanInput `json:"sellingPlansToCreate,omitempty"`
	SellingPlansToUpdate []SellingPlanInput `json:"sellingPlansToUpdate,omitempty"`
}

type SellingPlanInput struct {
	ID              *string                   `json:"id,omitempty"`
	Name            string                    `json:"name,omitempty"`
	Options         []string                  `json:"options,omitempty"`
	Position        int                       `json:"position,omitempty"`
	BillingPolicy   *SellingPlanPolicyInput   `json:"billingPolicy,omitempty"`
	DeliveryPolicy  *SellingPlanPolicyInput   `json:"deliveryPolicy,omitempty"`
	PricingPolicies []SellingPlanPricingInput `json:"pricingPolicies,omitempty"`
}

type SellingPlanPolicyInput struct {
	Recurring RecurringPolicyInput `json:"recurring"`
}

type RecurringPolicyInput struct {
	Interval      domain.Interval `json:"interval"`
	IntervalCount int             `json:"intervalCount"`
}

type SellingPlanPricingInput struct {
	Fixed FixedPricingPolicyInput `json:"fixed"`
}

type FixedPricingPolicyInput struct {
	AdjustmentType  domain.AdjustmentType `json:"adjustmentType"`
	AdjustmentValue PricingValueInput     `json:"adjustmentValue"`
}

type PricingValueInput struct {
	Percentage float64 `json:"percentage"`
}

// SellingPlanGroupResourceInput lists the products/variants a new group is attached to
type SellingPlanGroupResourceInput struct {
	ProductIDs        []string `json:"productIds"`
	ProductVariantIDs []string `json:"productVariantIds"`
}

// MoneyInput is used for one-time charges
type MoneyInput struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// AppSubscriptionLineItemInput carries a single recurring pricing plan
type AppSubscriptionLineItemInput struct {
	Plan AppPlanInput `json:"plan"`
}

type AppPlanInput struct {
	AppRecurringPricingDetails AppRecurringPricingInput `json:"appRecurringPricingDetails"`
}

type AppRecurringPricingInput struct {
	Price    MoneyInput `json:"price"`
	Interval string     `json:"interval"`
}

// NewSellingPlanGroupInput converts a domain group into the create input
func NewSellingPlanGroupInput(g domain.SellingPlanGroup) SellingPlanGroupInput {
	in := SellingPlanGroupInput{
		Name:         g.Name,
		MerchantCode: g.MerchantCode,
		Options:      g.Options,
		Position:     g.Position,
	}
	for _, sp := range g.SellingPlans {
		in.SellingPlansToCreate = append(in.SellingPlansToCreate, NewSellingPlanInput(sp))
	}
	return in
}

// NewSellingPlanInput converts a domain plan; a non-empty ID makes it an update entry
func NewSellingPlanInput(sp domain.SellingPlan) SellingPlanInput {
	in := SellingPlanInput{
		Name:     sp.Name,
		Position: sp.Position,
		BillingPolicy: &SellingPlanPolicyInput{Recurring: RecurringPolicyInput{
			Interval:      sp.BillingPolicy.Interval,
			IntervalCount: sp.BillingPolicy.IntervalCount,
		}},
		DeliveryPolicy: &SellingPlanPolicyInput{Recurring: RecurringPolicyInput{
			Interval:      sp.DeliveryPolicy.Interval,
			IntervalCount: sp.DeliveryPolicy.IntervalCount,
		}},
	}
	if sp.ID != "" {
		id := sp.ID
		in.ID = &id
	}
	if sp.Options != "" {
		in.Options = []string{sp.Options}
	}
	for _, pp := range sp.PricingPolicies {
		in.PricingPolicies = append(in.PricingPolicies, SellingPlanPricingInput{
			Fixed: FixedPricingPolicyInput{
				AdjustmentType:  pp.AdjustmentType,
				AdjustmentValue: PricingValueInput{Percentage: pp.AdjustmentValue.Percentage},
			},
		})
	}
	return in
}
