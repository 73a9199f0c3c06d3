package domain

import "context"

// Completion is one chat-completion call to the text generation provider.
type Completion struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// TextGenerator is the text generation provider contract.
type TextGenerator interface {
	Complete(ctx context.Context, req Completion) (string, error)
}

// VoiceSettings are the fixed synthesis parameters sent with every request.
type VoiceSettings struct {
	Stability       float64
	SimilarityBoost float64
	Style           float64
	SpeakerBoost    bool
}

// Audio is the result of one speech synthesis call.
type Audio struct {
	Bytes       []byte
	ContentType string
}

// SpeechSynthesizer is the speech synthesis provider contract.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (*Audio, error)
}

// Voice describes one entry in the synthesis provider's voice catalog.
type Voice struct {
	ID       string
	Name     string
	Category string
}

// VoiceCatalog lists the voices available for synthesis.
type VoiceCatalog interface {
	Voices(ctx context.Context) ([]Voice, error)
}
