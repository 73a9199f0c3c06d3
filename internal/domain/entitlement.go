package domain

// Tier enumerates the entitlement classes derived from subscription state.
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// Tone enumerates the plan delivery styles a caller may request.
type Tone string

const (
	ToneFast     Tone = "fast"
	ToneBalanced Tone = "balanced"
	ToneChill    Tone = "chill"
)

// ValidTone reports whether t names a supported tone.
func ValidTone(t Tone) bool {
	switch t {
	case ToneFast, ToneBalanced, ToneChill:
		return true
	}
	return false
}

// UnlimitedCeiling marks an entitlement with no daily generation cap.
const UnlimitedCeiling = 0

// FreeDailyCeiling is the number of plan generations the free tier permits
// per usage window.
const FreeDailyCeiling = 3

// Entitlement is the resolved permission set for one request. It is derived
// from the stored subscription on every request and never persisted.
type Entitlement struct {
	Tier         Tier
	DailyCeiling int // UnlimitedCeiling means no cap
	AllowedTones []Tone
	VoiceEnabled bool
}

// Unlimited reports whether the entitlement has no daily ceiling.
func (e Entitlement) Unlimited() bool {
	return e.DailyCeiling == UnlimitedCeiling
}

// ToneAllowed reports whether the entitlement includes the given tone.
func (e Entitlement) ToneAllowed(t Tone) bool {
	for _, allowed := range e.AllowedTones {
		if allowed == t {
			return true
		}
	}
	return false
}

// EntitlementForTier maps a tier to its permission set.
func EntitlementForTier(tier Tier) Entitlement {
	switch tier {
	case TierPro:
		return Entitlement{
			Tier:         TierPro,
			DailyCeiling: UnlimitedCeiling,
			AllowedTones: []Tone{ToneFast, ToneBalanced, ToneChill},
		}
	case TierPremium:
		return Entitlement{
			Tier:         TierPremium,
			DailyCeiling: UnlimitedCeiling,
			AllowedTones: []Tone{ToneFast, ToneBalanced, ToneChill},
			VoiceEnabled: true,
		}
	default:
		return Entitlement{
			Tier:         TierFree,
			DailyCeiling: FreeDailyCeiling,
			AllowedTones: []Tone{ToneBalanced},
		}
	}
}
