package domain

import "time"

// PlanRecord is one generated plan. Records are append-only: the service
// never updates or deletes them, and the day's record count doubles as the
// live quota counter.
type PlanRecord struct {
	ID          string
	UserID      string
	DreamText   string
	PlanContent string
	PlanType    Tier // tier at generation time, not the user's current tier
	CreatedAt   time.Time
}

// UserProfile holds the caller-supplied context fields woven into the
// generation prompt. All five fields are required.
type UserProfile struct {
	Age            string
	WorkStatus     string
	TimeCommitment string
	Skills         string
	Timeline       string
}

// GenerationRequest is a validated plan-generation request.
type GenerationRequest struct {
	DreamText string
	Profile   UserProfile
	Tone      Tone
}

// MaxDreamTextLength bounds the goal description a caller may submit.
const MaxDreamTextLength = 4000

// UsageWindow is the half-open day interval scoping the quota counter.
type UsageWindow struct {
	Start time.Time
	End   time.Time
}

// CurrentUsageWindow returns the UTC calendar day containing now.
func CurrentUsageWindow(now time.Time) UsageWindow {
	day := now.UTC().Truncate(24 * time.Hour)
	return UsageWindow{Start: day, End: day.Add(24 * time.Hour)}
}
