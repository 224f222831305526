package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/repository"
	"github.com/jafarshop/sellingplans/internal/shopify"
	"github.com/jafarshop/sellingplans/pkg/errors"
)

// SellingPlanService runs the selling plan group mutations behind the extension endpoints
type SellingPlanService struct {
	client shopify.Executor
	events repository.ActionEventRepository
	shop   string
	logger *zap.Logger
}

// NewSellingPlanService creates a new selling plan service. events may be nil.
func NewSellingPlanService(client shopify.Executor, events repository.ActionEventRepository, shop string, logger *zap.Logger) *SellingPlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SellingPlanService{
		client: client,
		events: events,
		shop:   shopify.NormalizeShopDomain(shop),
		logger: logger,
	}
}

type userErrorsPayload struct {
	SellingPlanGroup *struct {
		ID string `json:"id"`
	} `json:"sellingPlanGroup"`
	UserErrors []domain.UserError `json:"userErrors"`
}

// mutate executes a mutation and decodes data[field] into a userErrorsPayload
func (s *SellingPlanService) mutate(ctx context.Context, field, mutation string, variables map[string]interface{}) (*userErrorsPayload, error) {
	resp, err := s.client.Execute(ctx, mutation, variables)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("parse %s response: %w", field, err)
	}
	var payload userErrorsPayload
	raw, ok := data[field]
	if !ok || string(raw) == "null" {
		return nil, fmt.Errorf("%s: empty response", field)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse %s payload: %w", field, err)
	}
	return &payload, nil
}

// AddProduct attaches the product (or its variant) to each selected group
func (s *SellingPlanService) AddProduct(ctx context.Context, req AddProductRequest) (*ActionResult, error) {
	if len(req.SellingPlanGroupIDs) == 0 {
		return nil, &errors.ErrValidation{
			Message: "select at least one selling plan group",
			Fields:  map[string]string{"sellingPlanGroupIds": "required"},
		}
	}

	var userErrs []domain.UserError
	for _, groupID := range req.SellingPlanGroupIDs {
		var (
			payload *userErrorsPayload
			err     error
		)
		if req.VariantID != "" {
			payload, err = s.mutate(ctx, "sellingPlanGroupAddProductVariants", shopify.SellingPlanGroupAddProductVariantsMutation,
				map[string]interface{}{"id": groupID, "productVariantIds": []string{req.VariantID}})
		} else {
			payload, err = s.mutate(ctx, "sellingPlanGroupAddProducts", shopify.SellingPlanGroupAddProductsMutation,
				map[string]interface{}{"id": groupID, "productIds": []string{req.ProductID}})
		}
		if err != nil {
			// earlier groups may already hold the product
			userErrs = append(userErrs, domain.UserError{Field: []string{"sellingPlanGroupIds"}, Message: err.Error()})
			s.record(ctx, domain.ModeAdd, req.ProductID, strings.Join(req.SellingPlanGroupIDs, ","), userErrs)
			return nil, err
		}
		userErrs = append(userErrs, payload.UserErrors...)
	}

	s.record(ctx, domain.ModeAdd, req.ProductID, strings.Join(req.SellingPlanGroupIDs, ","), userErrs)
	if err := errors.UserErrors(userErrs); err != nil {
		return nil, err
	}
	s.logger.Info("Added product to selling plan groups",
		zap.String("product_id", req.ProductID),
		zap.Strings("selling_plan_group_ids", req.SellingPlanGroupIDs),
	)
	return &ActionResult{}, nil
}

// CreateGroup creates a single-plan group from the form and attaches the product to it
func (s *SellingPlanService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*ActionResult, error) {
	group, err := groupFromForm(req.PlanTitle, req.PercentageOff, req.DeliveryFrequency)
	if err != nil {
		return nil, err
	}

	resources := shopify.SellingPlanGroupResourceInput{ProductIDs: []string{}, ProductVariantIDs: []string{}}
	if req.VariantID != "" {
		resources.ProductVariantIDs = append(resources.ProductVariantIDs, req.VariantID)
	} else {
		resources.ProductIDs = append(resources.ProductIDs, req.ProductID)
	}

	payload, err := s.mutate(ctx, "sellingPlanGroupCreate", shopify.SellingPlanGroupCreateMutation, map[string]interface{}{
		"input":     shopify.NewSellingPlanGroupInput(group),
		"resources": resources,
	})
	if err != nil {
		return nil, err
	}

	result := &ActionResult{}
	if payload.SellingPlanGroup != nil {
		result.SellingPlanGroupID = payload.SellingPlanGroup.ID
	}
	s.record(ctx, domain.ModeCreate, req.ProductID, result.SellingPlanGroupID, payload.UserErrors)
	if err := errors.UserErrors(payload.UserErrors); err != nil {
		return nil, err
	}
	s.logger.Info("Created selling plan group",
		zap.String("product_id", req.ProductID),
		zap.String("selling_plan_group_id", result.SellingPlanGroupID),
	)
	return result, nil
}

// RemoveProduct detaches variants (when given) or the whole product from the group
func (s *SellingPlanService) RemoveProduct(ctx context.Context, req RemoveProductRequest) (*ActionResult, error) {
	variantIDs := req.VariantIDs
	if len(variantIDs) == 0 && req.VariantID != "" {
		variantIDs = []string{req.VariantID}
	}

	var (
		payload *userErrorsPayload
		err     error
	)
	if len(variantIDs) > 0 {
		payload, err = s.mutate(ctx, "sellingPlanGroupRemoveProductVariants", shopify.SellingPlanGroupRemoveProductVariantsMutation,
			map[string]interface{}{"id": req.SellingPlanGroupID, "productVariantIds": variantIDs})
	} else {
		payload, err = s.mutate(ctx, "sellingPlanGroupRemoveProducts", shopify.SellingPlanGroupRemoveProductsMutation,
			map[string]interface{}{"id": req.SellingPlanGroupID, "productIds": []string{req.ProductID}})
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.ModeRemove, req.ProductID, req.SellingPlanGroupID, payload.UserErrors)
	if err := errors.UserErrors(payload.UserErrors); err != nil {
		return nil, err
	}
	s.logger.Info("Removed product from selling plan group",
		zap.String("product_id", req.ProductID),
		zap.String("selling_plan_group_id", req.SellingPlanGroupID),
	)
	return &ActionResult{SellingPlanGroupID: req.SellingPlanGroupID}, nil
}

// EditGroup renames the group and rewrites its first plan's cadence and discount
func (s *SellingPlanService) EditGroup(ctx context.Context, req EditGroupRequest) (*ActionResult, error) {
	form, err := groupFromForm(req.PlanTitle, req.PercentageOff, req.DeliveryFrequency)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetGroup(ctx, req.SellingPlanGroupID)
	if err != nil {
		return nil, err
	}

	input := shopify.SellingPlanGroupInput{Name: form.Name}
	plan := form.SellingPlans[0]
	if len(existing.SellingPlans) > 0 {
		plan.ID = existing.SellingPlans[0].ID
		plan.Position = existing.SellingPlans[0].Position
		input.SellingPlansToUpdate = []shopify.SellingPlanInput{shopify.NewSellingPlanInput(plan)}
	} else {
		input.SellingPlansToCreate = []shopify.SellingPlanInput{shopify.NewSellingPlanInput(plan)}
	}

	payload, err := s.mutate(ctx, "sellingPlanGroupUpdate", shopify.SellingPlanGroupUpdateMutation, map[string]interface{}{
		"id":    req.SellingPlanGroupID,
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.ModeEdit, req.ProductID, req.SellingPlanGroupID, payload.UserErrors)
	if err := errors.UserErrors(payload.UserErrors); err != nil {
		return nil, err
	}
	s.logger.Info("Updated selling plan group", zap.String("selling_plan_group_id", req.SellingPlanGroupID))
	return &ActionResult{SellingPlanGroupID: req.SellingPlanGroupID}, nil
}

// GetGroup fetches a group with its plan ids
func (s *SellingPlanService) GetGroup(ctx context.Context, id string) (*domain.SellingPlanGroup, error) {
	resp, err := s.client.Execute(ctx, shopify.SellingPlanGroupQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get selling plan group: %w", err)
	}
	var result struct {
		SellingPlanGroup *struct {
			ID           string   `json:"id"`
			Name         string   `json:"name"`
			MerchantCode string   `json:"merchantCode"`
			Options      []string `json:"options"`
			SellingPlans struct {
				Edges []struct {
					Node struct {
						ID       string   `json:"id"`
						Name     string   `json:"name"`
						Options  []string `json:"options"`
						Position int      `json:"position"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"sellingPlans"`
		} `json:"sellingPlanGroup"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse selling plan group response: %w", err)
	}
	if result.SellingPlanGroup == nil {
		return nil, &errors.ErrNotFound{Resource: "selling plan group", ID: id}
	}
	g := result.SellingPlanGroup
	group := &domain.SellingPlanGroup{
		ID:           g.ID,
		Name:         g.Name,
		MerchantCode: g.MerchantCode,
		Options:      g.Options,
	}
	for _, e := range g.SellingPlans.Edges {
		group.SellingPlans = append(group.SellingPlans, domain.SellingPlan{
			ID:       e.Node.ID,
			Name:     e.Node.Name,
			Options:  strings.Join(e.Node.Options, ", "),
			Position: e.Node.Position,
		})
	}
	return group, nil
}

// ListGroups returns up to limit selling plan groups, following pagination
func (s *SellingPlanService) ListGroups(ctx context.Context, limit int) ([]domain.SellingPlanGroup, error) {
	if limit <= 0 {
		limit = 50
	}
	var (
		groups []domain.SellingPlanGroup
		cursor *string
	)
	for len(groups) < limit {
		first := limit - len(groups)
		if first > 250 {
			first = 250
		}
		variables := map[string]interface{}{"first": first}
		if cursor != nil {
			variables["after"] = *cursor
		}
		resp, err := s.client.Execute(ctx, shopify.SellingPlanGroupsQuery, variables)
		if err != nil {
			return nil, fmt.Errorf("list selling plan groups: %w", err)
		}
		var result struct {
			SellingPlanGroups struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Edges []struct {
					Node domain.SellingPlanGroup `json:"node"`
				} `json:"edges"`
			} `json:"sellingPlanGroups"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return nil, fmt.Errorf("parse selling plan groups response: %w", err)
		}
		for _, e := range result.SellingPlanGroups.Edges {
			groups = append(groups, e.Node)
		}
		if !result.SellingPlanGroups.PageInfo.HasNextPage {
			break
		}
		end := result.SellingPlanGroups.PageInfo.EndCursor
		cursor = &end
	}
	return groups, nil
}

// record stores an audit event; failures are logged and do not fail the action
func (s *SellingPlanService) record(ctx context.Context, mode domain.Mode, productID, groupID string, userErrs []domain.UserError) {
	if s.events == nil {
		return
	}
	event := &domain.ActionEvent{
		Shop:               s.shop,
		Mode:               mode,
		ProductID:          productID,
		SellingPlanGroupID: groupID,
		Succeeded:          len(userErrs) == 0,
		UserErrors:         userErrs,
	}
	if err := s.events.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record action event", zap.String("mode", string(mode)), zap.Error(err))
	}
}

// groupFromForm validates the Create/Edit form and builds a one-plan weekly group
func groupFromForm(title string, percentOff decimal.Decimal, weeks int) (domain.SellingPlanGroup, error) {
	fields := map[string]string{}
	title = strings.TrimSpace(title)
	if title == "" {
		fields["planTitle"] = "required"
	}
	if percentOff.IsNegative() || percentOff.GreaterThan(decimal.NewFromInt(100)) {
		fields["percentageOff"] = "must be between 0 and 100"
	}
	if weeks < 1 {
		fields["deliveryFrequency"] = "must be a positive number of weeks"
	}
	if len(fields) > 0 {
		return domain.SellingPlanGroup{}, &errors.ErrValidation{Message: "invalid plan settings", Fields: fields}
	}

	group := domain.SellingPlanGroup{
		Name:         title,
		MerchantCode: merchantCode(title),
		Options:      []string{domain.DefaultGroupOption},
		Position:     1,
		SellingPlans: []domain.SellingPlan{domain.WeeklyPlan(weeks, 1, percentOff)},
	}
	if err := group.Validate(); err != nil {
		return domain.SellingPlanGroup{}, &errors.ErrValidation{Message: err.Error()}
	}
	return group, nil
}

// merchantCode slugs a title: "Subscribe & Save" -> "subscribe-save", "Café" -> "cafe".
// Titles with no Latin letters or digits get a generated "plan-xxxxxxxx" code.
func merchantCode(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	code := strings.TrimSuffix(b.String(), "-")
	if code == "" {
		code = "plan-" + uuid.NewString()[:8]
	}
	return code
}
