package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/afghan7861/Zentro-backend/internal/domain"
	"github.com/afghan7861/Zentro-backend/internal/entitlement"
	"github.com/afghan7861/Zentro-backend/internal/generation"
	"github.com/afghan7861/Zentro-backend/internal/middleware"
)

// Generator is the orchestrator surface the handlers depend on.
type Generator interface {
	GeneratePlan(ctx context.Context, userID string, req domain.GenerationRequest) (*generation.PlanResult, error)
	GenerateVoice(ctx context.Context, userID string, req generation.VoiceRequest) (*generation.VoiceResult, error)
}

// App is the handler container wiring the orchestrator, repositories and
// logger into the HTTP surface.
type App struct {
	Generator Generator
	Plans     domain.PlanRepository
	Voices    domain.VoiceCatalog
	Resolver  *entitlement.Resolver
	Logger    zerolog.Logger
}

func NewApp(gen Generator, plans domain.PlanRepository, voices domain.VoiceCatalog, resolver *entitlement.Resolver, logger zerolog.Logger) *App {
	return &App{
		Generator: gen,
		Plans:     plans,
		Voices:    voices,
		Resolver:  resolver,
		Logger:    logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": errCode, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

const upgradeMessage = "You've used your 3 free plans today. Upgrade to Pro or Premium to unlock more."

// writeDomainError maps the error taxonomy onto HTTP statuses. Retryable
// provider failures surface as 502 so callers know a backoff retry is
// reasonable; rejections stay 500 with a distinct code.
func (a *App) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		a.error(w, http.StatusBadRequest, "bad_request", valErr.Error())
		return
	}

	var quotaErr *domain.QuotaExceededError
	if errors.As(err, &quotaErr) {
		a.json(w, http.StatusTooManyRequests, map[string]any{
			"error":           "daily_limit_reached",
			"message":         upgradeMessage,
			"dailyPlansUsed":  quotaErr.Used,
			"dailyLimit":      quotaErr.Ceiling,
			"upgradeRequired": true,
		})
		return
	}

	var deniedErr *domain.EntitlementDeniedError
	if errors.As(err, &deniedErr) {
		message := "This feature is not included in your current plan."
		if deniedErr.Feature == "voice" {
			message = "Voice generation is available for Premium subscribers only."
		}
		if deniedErr.Feature == "tone" {
			message = "Custom plan tones are available for Pro and Premium subscribers."
		}
		a.error(w, http.StatusForbidden, "upgrade_required", message)
		return
	}

	if errors.Is(err, domain.ErrSubscriptionLookup) {
		a.Logger.Error().Err(err).Msg("subscription lookup failed")
		a.error(w, http.StatusServiceUnavailable, "subscription_unavailable", "Could not verify your subscription, please retry.")
		return
	}

	var provErr *domain.ProviderError
	if errors.As(err, &provErr) {
		a.Logger.Error().Err(err).Str("provider", provErr.Provider).Msg("provider call failed")
		if provErr.Retryable {
			a.error(w, http.StatusBadGateway, "provider_unavailable", "The AI service is temporarily unavailable, please retry.")
			return
		}
		a.error(w, http.StatusInternalServerError, "provider_rejected", "The AI service could not process this request.")
		return
	}

	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	a.error(w, http.StatusInternalServerError, "internal", "Internal server error.")
}
