package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jafarshop/sellingplans/internal/shopify"
)

// ShopName reads the shop's display name
func ShopName(ctx context.Context, client shopify.Executor) (string, error) {
	resp, err := client.Execute(ctx, shopify.ShopQuery, nil)
	if err != nil {
		return "", fmt.Errorf("shop query: %w", err)
	}
	var result struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("parse shop response: %w", err)
	}
	return result.Shop.Name, nil
}
