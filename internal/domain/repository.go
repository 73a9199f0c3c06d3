package domain

import "context"

// SubscriptionRepository defines read access to billing-owned subscriptions.
type SubscriptionRepository interface {
	// GetByUserID returns the user's subscription, or ErrNotFound when the
	// user has never subscribed.
	GetByUserID(ctx context.Context, userID string) (*SubscriptionRecord, error)
}

// PlanRepository defines persistence for generated plans.
type PlanRepository interface {
	Insert(ctx context.Context, plan *PlanRecord) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]PlanRecord, error)
	// CountInWindow returns how many plans the user generated inside the
	// given usage window.
	CountInWindow(ctx context.Context, userID string, window UsageWindow) (int, error)
}
