package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/domain"
)

type idempotencyKeyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIdempotencyKeyRepository creates a new idempotency key repository
func NewIdempotencyKeyRepository(db *sql.DB, logger *zap.Logger) *idempotencyKeyRepository {
	return &idempotencyKeyRepository{
		db:     db,
		logger: logger,
	}
}

// GetByKey returns nil, nil when the key has not been seen for the shop
func (r *idempotencyKeyRepository) GetByKey(ctx context.Context, shop, key string) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT key, shop, request_hash, status_code, response, created_at
		FROM idempotency_keys
		WHERE shop = $1 AND key = $2
	`

	var record domain.IdempotencyRecord

	err := r.db.QueryRowContext(ctx, query, shop, key).Scan(
		&record.Key,
		&record.Shop,
		&record.RequestHash,
		&record.StatusCode,
		&record.Response,
		&record.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get idempotency key", zap.Error(err))
		return nil, err
	}

	return &record, nil
}

func (r *idempotencyKeyRepository) Create(ctx context.Context, record *domain.IdempotencyRecord) error {
	query := `
		INSERT INTO idempotency_keys (key, shop, request_hash, status_code, response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (shop, key) DO NOTHING
	`

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		record.Key,
		record.Shop,
		record.RequestHash,
		record.StatusCode,
		record.Response,
		record.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create idempotency key", zap.Error(err))
		return err
	}

	return nil
}
