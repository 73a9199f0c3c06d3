package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/afghan7861/Zentro-backend/internal/generation"
)

type generateVoiceRequest struct {
	PlanContent string `json:"planContent"`
	VoiceID     string `json:"voiceId"`
}

type generateVoiceResponse struct {
	Success     bool   `json:"success"`
	AudioData   string `json:"audioData"`
	ContentType string `json:"contentType"`
	Script      string `json:"script"`
}

// GenerateVoice handles POST /v1/generate-voice.
func (a *App) GenerateVoice(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req generateVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	result, err := a.Generator.GenerateVoice(r.Context(), userID, generation.VoiceRequest{
		PlanContent: req.PlanContent,
		VoiceID:     req.VoiceID,
	})
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}

	a.json(w, http.StatusOK, generateVoiceResponse{
		Success:     true,
		AudioData:   result.AudioBase64,
		ContentType: result.ContentType,
		Script:      result.Script,
	})
}

type voiceDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ListVoices handles GET /v1/voices. The catalog is only useful to callers
// who can synthesize, so it shares the voice entitlement gate.
func (a *App) ListVoices(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	ent, err := a.Resolver.Resolve(r.Context(), userID)
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	if !ent.VoiceEnabled {
		a.error(w, http.StatusForbidden, "upgrade_required", "Voice generation is available for Premium subscribers only.")
		return
	}
	voices, err := a.Voices.Voices(r.Context())
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	items := make([]voiceDTO, 0, len(voices))
	for _, v := range voices {
		items = append(items, voiceDTO{ID: v.ID, Name: v.Name, Category: v.Category})
	}
	a.json(w, http.StatusOK, map[string]any{"voices": items})
}
