package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/afghan7861/Zentro-backend/internal/domain"
)

// Decision is the outcome of one quota check.
type Decision struct {
	Allowed bool
	Used    int
	Ceiling int // domain.UnlimitedCeiling when the tier has no cap
}

// Counter enforces the per-user daily generation ceiling. The day's usage is
// the count of plan records inside the current usage window, so the check
// must run under the same per-user lock as the eventual insert (see Locks).
type Counter struct {
	plans domain.PlanRepository
	now   func() time.Time
}

func NewCounter(plans domain.PlanRepository) *Counter {
	return &Counter{plans: plans, now: time.Now}
}

// WithClock overrides the time source. Tests only.
func (c *Counter) WithClock(now func() time.Time) *Counter {
	c.now = now
	return c
}

// Check reports whether the user may generate another plan today. The window
// is counted for every tier so the response can report real usage; only
// capped tiers can be rejected.
func (c *Counter) Check(ctx context.Context, userID string, ent domain.Entitlement) (Decision, error) {
	window := domain.CurrentUsageWindow(c.now())
	used, err := c.plans.CountInWindow(ctx, userID, window)
	if err != nil {
		return Decision{}, fmt.Errorf("count plans in window: %w", err)
	}
	if ent.Unlimited() {
		return Decision{Allowed: true, Used: used, Ceiling: domain.UnlimitedCeiling}, nil
	}
	return Decision{
		Allowed: used < ent.DailyCeiling,
		Used:    used,
		Ceiling: ent.DailyCeiling,
	}, nil
}
