package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afghan7861/Zentro-backend/internal/domain"
)

// SubscriptionRepositoryPG implements domain.SubscriptionRepository backed by
// PostgreSQL. The table is written by the billing webhook service; this
// repository only reads it.
type SubscriptionRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepositoryPG.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepositoryPG {
	return &SubscriptionRepositoryPG{pool: pool}
}

// GetByUserID fetches the user's subscription row.
func (r *SubscriptionRepositoryPG) GetByUserID(ctx context.Context, userID string) (*domain.SubscriptionRecord, error) {
	row := r.pool.QueryRow(ctx, `
SELECT user_id, plan_type, active, current_period_end, created_at, updated_at
FROM subscriptions
WHERE user_id = $1;
`, userID)

	var sub domain.SubscriptionRecord
	err := row.Scan(
		&sub.UserID,
		&sub.PlanType,
		&sub.Active,
		&sub.CurrentPeriodEnd,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &sub, nil
}

var _ domain.SubscriptionRepository = (*SubscriptionRepositoryPG)(nil)
