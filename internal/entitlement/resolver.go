package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/afghan7861/Zentro-backend/internal/domain"
)

// Resolver derives the permission set for a user from stored subscription
// state. It has no side effects.
type Resolver struct {
	subscriptions domain.SubscriptionRepository
}

func NewResolver(subscriptions domain.SubscriptionRepository) *Resolver {
	return &Resolver{subscriptions: subscriptions}
}

// Resolve maps a user to their entitlement. A missing or inactive
// subscription is the free tier; a failed lookup is not, and surfaces as
// ErrSubscriptionLookup so the caller decides policy instead of silently
// downgrading a paying user.
func (r *Resolver) Resolve(ctx context.Context, userID string) (domain.Entitlement, error) {
	sub, err := r.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.EntitlementForTier(domain.TierFree), nil
		}
		return domain.Entitlement{}, fmt.Errorf("%w: %v", domain.ErrSubscriptionLookup, err)
	}
	if sub == nil || !sub.Active {
		return domain.EntitlementForTier(domain.TierFree), nil
	}
	return domain.EntitlementForTier(sub.PlanType), nil
}
