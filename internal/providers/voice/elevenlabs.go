package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/afghan7861/Zentro-backend/internal/domain"
)

// ElevenLabsOptions configures the text-to-speech client.
type ElevenLabsOptions struct {
	APIKey         string
	BaseURL        string
	DefaultVoiceID string
	HTTPClient     *http.Client
}

// ElevenLabsClient implements domain.SpeechSynthesizer and domain.VoiceCatalog
// against the ElevenLabs API.
type ElevenLabsClient struct {
	apiKey         string
	baseURL        string
	defaultVoiceID string
	client         *http.Client
}

const elevenLabsDefaultTimeout = 60 * time.Second

const synthesisModelID = "eleven_monolingual_v1"

// defaultVoiceSettings are the fixed synthesis parameters sent with every
// request.
var defaultVoiceSettings = domain.VoiceSettings{
	Stability:       0.5,
	SimilarityBoost: 0.5,
	Style:           0.0,
	SpeakerBoost:    true,
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type voicesResponse struct {
	Voices []struct {
		VoiceID  string `json:"voice_id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"voices"`
}

// NewElevenLabsClient validates the options and returns a ready client.
func NewElevenLabsClient(opts ElevenLabsOptions) (*ElevenLabsClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("elevenlabs api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io/v1"
	}
	voiceID := strings.TrimSpace(opts.DefaultVoiceID)
	if voiceID == "" {
		return nil, errors.New("elevenlabs default voice id is required")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: elevenLabsDefaultTimeout}
	}
	return &ElevenLabsClient{
		apiKey:         strings.TrimSpace(opts.APIKey),
		baseURL:        baseURL,
		defaultVoiceID: voiceID,
		client:         client,
	}, nil
}

// Synthesize converts text to speech. An empty voiceID selects the default
// voice.
func (e *ElevenLabsClient) Synthesize(ctx context.Context, text, voiceID string) (*domain.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Err: errors.New("empty text")}
	}
	if strings.TrimSpace(voiceID) == "" {
		voiceID = e.defaultVoiceID
	}
	payload := synthesizeRequest{
		Text:    text,
		ModelID: synthesisModelID,
		VoiceSettings: voiceSettings{
			Stability:       defaultVoiceSettings.Stability,
			SimilarityBoost: defaultVoiceSettings.SimilarityBoost,
			Style:           defaultVoiceSettings.Style,
			UseSpeakerBoost: defaultVoiceSettings.SpeakerBoost,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Err: fmt.Errorf("encode request: %w", err)}
	}
	endpoint := fmt.Sprintf("%s/text-to-speech/%s", e.baseURL, url.PathEscape(voiceID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", e.apiKey)
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Retryable: true, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, &domain.ProviderError{
			Provider:  "elevenlabs",
			Retryable: retryableStatus(resp.StatusCode),
			Err:       fmt.Errorf("elevenlabs status %d", resp.StatusCode),
		}
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Retryable: true, Err: fmt.Errorf("read audio: %w", err)}
	}
	if len(audio) == 0 {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Err: errors.New("empty audio")}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return &domain.Audio{Bytes: audio, ContentType: contentType}, nil
}

// Voices fetches the provider's voice catalog.
func (e *ElevenLabsClient) Voices(ctx context.Context) ([]domain.Voice, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/voices", nil)
	if err != nil {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("xi-api-key", e.apiKey)
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Retryable: true, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, &domain.ProviderError{
			Provider:  "elevenlabs",
			Retryable: retryableStatus(resp.StatusCode),
			Err:       fmt.Errorf("elevenlabs status %d", resp.StatusCode),
		}
	}
	var out voicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.ProviderError{Provider: "elevenlabs", Retryable: true, Err: fmt.Errorf("decode response: %w", err)}
	}
	voices := make([]domain.Voice, 0, len(out.Voices))
	for _, v := range out.Voices {
		voices = append(voices, domain.Voice{ID: v.VoiceID, Name: v.Name, Category: v.Category})
	}
	return voices, nil
}

var (
	_ domain.SpeechSynthesizer = (*ElevenLabsClient)(nil)
	_ domain.VoiceCatalog      = (*ElevenLabsClient)(nil)
)

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
