package domain

import "time"

// SubscriptionRecord mirrors the billing collaborator's subscription row.
// This service only reads it; the billing webhook handler owns all writes.
type SubscriptionRecord struct {
	UserID           string
	PlanType         Tier // pro or premium; free users have no record
	Active           bool
	CurrentPeriodEnd time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
