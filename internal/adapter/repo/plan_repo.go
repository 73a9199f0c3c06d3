package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afghan7861/Zentro-backend/internal/domain"
)

// PlanRepositoryPG implements domain.PlanRepository backed by PostgreSQL.
// dream_plans is append-only: no update or delete statements exist here.
type PlanRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepositoryPG.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepositoryPG {
	return &PlanRepositoryPG{pool: pool}
}

// Insert stores one generated plan.
func (r *PlanRepositoryPG) Insert(ctx context.Context, plan *domain.PlanRecord) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO dream_plans (id, user_id, dream_text, plan_content, plan_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6);
`,
		plan.ID,
		plan.UserID,
		plan.DreamText,
		plan.PlanContent,
		plan.PlanType,
		plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// ListByUserID returns the user's plans, newest first.
func (r *PlanRepositoryPG) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.PlanRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, dream_text, plan_content, plan_type, created_at
FROM dream_plans
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.PlanRecord
	for rows.Next() {
		var plan domain.PlanRecord
		if err := rows.Scan(
			&plan.ID,
			&plan.UserID,
			&plan.DreamText,
			&plan.PlanContent,
			&plan.PlanType,
			&plan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// CountInWindow counts the user's plans created inside the usage window.
func (r *PlanRepositoryPG) CountInWindow(ctx context.Context, userID string, window domain.UsageWindow) (int, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM dream_plans
WHERE user_id = $1
  AND created_at >= $2
  AND created_at < $3;
`, userID, window.Start, window.End)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count plans: %w", err)
	}
	return count, nil
}

var _ domain.PlanRepository = (*PlanRepositoryPG)(nil)
