package generation

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/afghan7861/Zentro-backend/internal/domain"
	"github.com/afghan7861/Zentro-backend/internal/entitlement"
	"github.com/afghan7861/Zentro-backend/internal/quota"
)

// PlanResult is the plan pipeline's response payload.
type PlanResult struct {
	Plan     string
	PlanType domain.Tier
	Used     int // plans generated today, including this one
	Ceiling  int // domain.UnlimitedCeiling for uncapped tiers
}

// VoiceResult is the voice pipeline's response payload. Nothing in it is
// persisted.
type VoiceResult struct {
	Script      string
	AudioBase64 string
	ContentType string
}

// VoiceRequest asks for a spoken rendition of an already generated plan.
type VoiceRequest struct {
	PlanContent string
	VoiceID     string
}

// Orchestrator sequences validation, entitlement, quota, provider calls and
// persistence for the plan and voice pipelines. Provider calls run under a
// bounded timeout; quota check and plan insert run under the user's lock.
type Orchestrator struct {
	resolver    *entitlement.Resolver
	counter     *quota.Counter
	locks       *quota.UserLocks
	plans       domain.PlanRepository
	textGen     domain.TextGenerator
	synthesizer domain.SpeechSynthesizer
	timeout     time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Resolver    *entitlement.Resolver
	Counter     *quota.Counter
	Locks       *quota.UserLocks
	Plans       domain.PlanRepository
	TextGen     domain.TextGenerator
	Synthesizer domain.SpeechSynthesizer
	Timeout     time.Duration
	Logger      zerolog.Logger
}

const defaultProviderTimeout = 30 * time.Second

func NewOrchestrator(opts Options) *Orchestrator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	locks := opts.Locks
	if locks == nil {
		locks = quota.NewUserLocks()
	}
	return &Orchestrator{
		resolver:    opts.Resolver,
		counter:     opts.Counter,
		locks:       locks,
		plans:       opts.Plans,
		textGen:     opts.TextGen,
		synthesizer: opts.Synthesizer,
		timeout:     timeout,
		logger:      opts.Logger,
		now:         time.Now,
	}
}

// GeneratePlan runs the plan pipeline for one request. The quota decision is
// made before any provider spend, and a record is written only when text
// generation succeeded.
func (o *Orchestrator) GeneratePlan(ctx context.Context, userID string, req domain.GenerationRequest) (*PlanResult, error) {
	if err := validatePlanRequest(&req); err != nil {
		return nil, err
	}

	ent, err := o.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The resolved entitlement is authoritative; a caller-asserted tier is
	// never consulted.
	if req.Tone != domain.ToneBalanced && !ent.ToneAllowed(req.Tone) {
		return nil, &domain.EntitlementDeniedError{Feature: "tone", Tier: ent.Tier}
	}

	unlock := o.locks.Lock(userID)
	defer unlock()

	decision, err := o.counter.Check(ctx, userID, ent)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &domain.QuotaExceededError{Used: decision.Used, Ceiling: decision.Ceiling}
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	content, err := o.textGen.Complete(callCtx, domain.Completion{
		SystemPrompt: planSystemPrompt(req.Tone),
		UserPrompt:   planUserPrompt(req),
		Temperature:  planTemperature,
		MaxTokens:    planMaxTokens,
	})
	if err != nil {
		o.logger.Error().Err(err).Str("user_id", userID).Msg("plan text generation failed")
		return nil, &domain.GenerationError{Stage: "text", Err: err}
	}

	record := &domain.PlanRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		DreamText:   req.DreamText,
		PlanContent: content,
		PlanType:    ent.Tier,
		CreatedAt:   o.now().UTC(),
	}
	if err := o.plans.Insert(ctx, record); err != nil {
		o.logger.Error().Err(err).Str("user_id", userID).Msg("plan record insert failed")
		return nil, &domain.GenerationError{Stage: "persist", Err: err}
	}

	o.logger.Info().
		Str("user_id", userID).
		Str("plan_id", record.ID).
		Str("plan_type", string(ent.Tier)).
		Str("tone", string(req.Tone)).
		Msg("plan generated")

	return &PlanResult{
		Plan:     content,
		PlanType: ent.Tier,
		Used:     decision.Used + 1,
		Ceiling:  decision.Ceiling,
	}, nil
}

// GenerateVoice runs the voice pipeline: entitlement gate, script transform,
// speech synthesis, transport encoding. All-or-nothing; a produced script is
// never returned without its audio, and no record is written.
func (o *Orchestrator) GenerateVoice(ctx context.Context, userID string, req VoiceRequest) (*VoiceResult, error) {
	if strings.TrimSpace(req.PlanContent) == "" {
		return nil, &domain.ValidationError{Field: "planContent", Reason: "must not be empty"}
	}

	ent, err := o.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ent.VoiceEnabled {
		return nil, &domain.EntitlementDeniedError{Feature: "voice", Tier: ent.Tier}
	}

	scriptCtx, cancelScript := context.WithTimeout(ctx, o.timeout)
	defer cancelScript()
	script, err := o.textGen.Complete(scriptCtx, domain.Completion{
		SystemPrompt: scriptSystemPrompt,
		UserPrompt:   scriptUserPrompt(req.PlanContent),
		Temperature:  scriptTemperature,
		MaxTokens:    scriptMaxTokens,
	})
	if err != nil {
		o.logger.Error().Err(err).Str("user_id", userID).Msg("voice script generation failed")
		return nil, &domain.GenerationError{Stage: "script", Err: err}
	}

	synthCtx, cancelSynth := context.WithTimeout(ctx, o.timeout)
	defer cancelSynth()
	audio, err := o.synthesizer.Synthesize(synthCtx, script, req.VoiceID)
	if err != nil {
		o.logger.Error().Err(err).Str("user_id", userID).Msg("speech synthesis failed")
		return nil, &domain.GenerationError{Stage: "synthesis", Err: err}
	}

	o.logger.Info().
		Str("user_id", userID).
		Int("audio_bytes", len(audio.Bytes)).
		Msg("voice generated")

	return &VoiceResult{
		Script:      script,
		AudioBase64: EncodeAudio(audio.Bytes),
		ContentType: audio.ContentType,
	}, nil
}

// EncodeAudio converts raw audio into its transport-safe textual form.
func EncodeAudio(audio []byte) string {
	return base64.StdEncoding.EncodeToString(audio)
}

// DecodeAudio reverses EncodeAudio.
func DecodeAudio(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}

func validatePlanRequest(req *domain.GenerationRequest) error {
	req.DreamText = strings.TrimSpace(req.DreamText)
	if req.DreamText == "" {
		return &domain.ValidationError{Field: "dreamText", Reason: "must not be empty"}
	}
	if len(req.DreamText) > domain.MaxDreamTextLength {
		return &domain.ValidationError{Field: "dreamText", Reason: "too long"}
	}
	profileFields := []struct {
		name  string
		value string
	}{
		{"age", req.Profile.Age},
		{"workStatus", req.Profile.WorkStatus},
		{"timeCommitment", req.Profile.TimeCommitment},
		{"skills", req.Profile.Skills},
		{"timeline", req.Profile.Timeline},
	}
	for _, field := range profileFields {
		if strings.TrimSpace(field.value) == "" {
			return &domain.ValidationError{Field: "userDetails." + field.name, Reason: "required"}
		}
	}
	if req.Tone == "" {
		req.Tone = domain.ToneBalanced
	}
	req.Tone = domain.Tone(strings.ToLower(string(req.Tone)))
	if !domain.ValidTone(req.Tone) {
		return &domain.ValidationError{Field: "planTone", Reason: "must be one of fast, balanced, chill"}
	}
	return nil
}
