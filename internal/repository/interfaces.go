package repository

import (
	"context"

	"github.com/jafarshop/sellingplans/internal/domain"
)

// ActionEventRepository defines action audit data access methods
type ActionEventRepository interface {
	Create(ctx context.Context, event *domain.ActionEvent) error
	ListByProductID(ctx context.Context, shop, productID string, limit int) ([]*domain.ActionEvent, error)
}

// IdempotencyKeyRepository defines idempotency key data access methods
type IdempotencyKeyRepository interface {
	GetByKey(ctx context.Context, shop, key string) (*domain.IdempotencyRecord, error)
	Create(ctx context.Context, record *domain.IdempotencyRecord) error
}

// Repositories aggregates all repositories
type Repositories struct {
	ActionEvent    ActionEventRepository
	IdempotencyKey IdempotencyKeyRepository
}
