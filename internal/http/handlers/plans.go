package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/afghan7861/Zentro-backend/internal/domain"
)

type userDetailsDTO struct {
	Age            string `json:"age"`
	WorkStatus     string `json:"workStatus"`
	TimeCommitment string `json:"timeCommitment"`
	Skills         string `json:"skills"`
	Timeline       string `json:"timeline"`
}

type generatePlanRequest struct {
	DreamText   string         `json:"dreamText"`
	UserDetails userDetailsDTO `json:"userDetails"`
	PlanTone    string         `json:"planTone"`
}

type generatePlanResponse struct {
	Success        bool   `json:"success"`
	Plan           string `json:"plan"`
	PlanType       string `json:"planType"`
	DailyPlansUsed int    `json:"dailyPlansUsed"`
	DailyLimit     any    `json:"dailyLimit"` // int ceiling or "unlimited"
}

// GeneratePlan handles POST /v1/generate-plan.
func (a *App) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req generatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	result, err := a.Generator.GeneratePlan(r.Context(), userID, domain.GenerationRequest{
		DreamText: req.DreamText,
		Profile: domain.UserProfile{
			Age:            req.UserDetails.Age,
			WorkStatus:     req.UserDetails.WorkStatus,
			TimeCommitment: req.UserDetails.TimeCommitment,
			Skills:         req.UserDetails.Skills,
			Timeline:       req.UserDetails.Timeline,
		},
		Tone: domain.Tone(req.PlanTone),
	})
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}

	a.json(w, http.StatusOK, generatePlanResponse{
		Success:        true,
		Plan:           result.Plan,
		PlanType:       string(result.PlanType),
		DailyPlansUsed: result.Used,
		DailyLimit:     dailyLimitValue(result.Ceiling),
	})
}

type planDTO struct {
	ID        string `json:"id"`
	DreamText string `json:"dreamText"`
	Plan      string `json:"plan"`
	PlanType  string `json:"planType"`
	CreatedAt string `json:"createdAt"`
}

// ListPlans handles GET /v1/plans, newest first.
func (a *App) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	plans, err := a.Plans.ListByUserID(r.Context(), userID, limit)
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	items := make([]planDTO, 0, len(plans))
	for _, plan := range plans {
		items = append(items, planDTO{
			ID:        plan.ID,
			DreamText: plan.DreamText,
			Plan:      plan.PlanContent,
			PlanType:  string(plan.PlanType),
			CreatedAt: plan.CreatedAt.Format(time.RFC3339),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"plans": items})
}

func dailyLimitValue(ceiling int) any {
	if ceiling == domain.UnlimitedCeiling {
		return "unlimited"
	}
	return ceiling
}
