package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/domain"
)

type actionEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewActionEventRepository creates a new action event repository
func NewActionEventRepository(db *sql.DB, logger *zap.Logger) *actionEventRepository {
	return &actionEventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *actionEventRepository) Create(ctx context.Context, event *domain.ActionEvent) error {
	query := `
		INSERT INTO plan_action_events (id, shop, mode, product_id, selling_plan_group_id, succeeded, user_errors, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var userErrorsJSON []byte
	if len(event.UserErrors) > 0 {
		var err error
		userErrorsJSON, err = json.Marshal(event.UserErrors)
		if err != nil {
			return err
		}
	}

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Shop,
		string(event.Mode),
		event.ProductID,
		event.SellingPlanGroupID,
		event.Succeeded,
		userErrorsJSON,
		event.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create action event", zap.Error(err))
		return err
	}

	return nil
}

func (r *actionEventRepository) ListByProductID(ctx context.Context, shop, productID string, limit int) ([]*domain.ActionEvent, error) {
	query := `
		SELECT id, shop, mode, product_id, selling_plan_group_id, succeeded, user_errors, created_at
		FROM plan_action_events
		WHERE shop = $1 AND product_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, shop, productID, limit)
	if err != nil {
		r.logger.Error("Failed to list action events by product ID", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []*domain.ActionEvent
	for rows.Next() {
		var (
			event          domain.ActionEvent
			mode           string
			userErrorsJSON []byte
		)

		err := rows.Scan(
			&event.ID,
			&event.Shop,
			&mode,
			&event.ProductID,
			&event.SellingPlanGroupID,
			&event.Succeeded,
			&userErrorsJSON,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		event.Mode = domain.Mode(mode)

		if len(userErrorsJSON) > 0 {
			if err := json.Unmarshal(userErrorsJSON, &event.UserErrors); err != nil {
				return nil, err
			}
		}

		events = append(events, &event)
	}

	return events, rows.Err()
}
