package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrEntitlementDenied  = errors.New("entitlement denied")
	ErrSubscriptionLookup = errors.New("subscription lookup failed")
	ErrProviderFailure    = errors.New("provider failure")
)

// ValidationError reports a request field the caller must fix.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// EntitlementDeniedError reports a feature the resolved tier does not include.
type EntitlementDeniedError struct {
	Feature string
	Tier    Tier
}

func (e *EntitlementDeniedError) Error() string {
	return fmt.Sprintf("tier %s does not include %s", e.Tier, e.Feature)
}

func (e *EntitlementDeniedError) Unwrap() error { return ErrEntitlementDenied }

// QuotaExceededError carries the counts needed for the 429 response body.
type QuotaExceededError struct {
	Used    int
	Ceiling int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily quota exceeded: %d of %d used", e.Used, e.Ceiling)
}

func (e *QuotaExceededError) Unwrap() error { return ErrQuotaExceeded }

// ProviderError wraps a failure from an external AI provider. Retryable marks
// transport-level failures (timeouts, 5xx) the caller may retry with backoff;
// non-retryable failures are content or policy rejections.
type ProviderError struct {
	Provider  string
	Retryable bool
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return ErrProviderFailure }

// GenerationError annotates a pipeline failure with the stage that caused it.
type GenerationError struct {
	Stage string // "text", "script", "synthesis", "persist"
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation stage %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
