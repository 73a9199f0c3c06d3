package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/afghan7861/Zentro-backend/internal/domain"
)

type roundTripFunc func(r *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(t *testing.T, rt roundTripFunc) *ElevenLabsClient {
	t.Helper()
	client, err := NewElevenLabsClient(ElevenLabsOptions{
		APIKey:         "xi-test",
		DefaultVoiceID: "adam",
		HTTPClient:     &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewElevenLabsClient returned error: %v", err)
	}
	return client
}

func TestSynthesizeUsesDefaultVoice(t *testing.T) {
	t.Parallel()
	audio := []byte{0xff, 0xf3, 0x01, 0x02}
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/v1/text-to-speech/adam" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("xi-api-key"); got != "xi-test" {
			t.Fatalf("xi-api-key = %q", got)
		}
		var req synthesizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ModelID != synthesisModelID {
			t.Fatalf("model_id = %q", req.ModelID)
		}
		if req.VoiceSettings.Stability != 0.5 || !req.VoiceSettings.UseSpeakerBoost {
			t.Fatalf("voice_settings = %+v", req.VoiceSettings)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"audio/mpeg"}},
			Body:       io.NopCloser(bytes.NewReader(audio)),
		}, nil
	})

	got, err := client.Synthesize(context.Background(), "hello there", "")
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if !bytes.Equal(got.Bytes, audio) {
		t.Fatalf("audio bytes = %v, want %v", got.Bytes, audio)
	}
	if got.ContentType != "audio/mpeg" {
		t.Fatalf("content type = %q", got.ContentType)
	}
}

func TestSynthesizeCustomVoice(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/v1/text-to-speech/rachel" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"audio/mpeg"}},
			Body:       io.NopCloser(bytes.NewReader([]byte{1})),
		}, nil
	})
	if _, err := client.Synthesize(context.Background(), "hi", "rachel"); err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
}

func TestSynthesizeErrorClassification(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		status    int
		transport error
		retryable bool
	}{
		{name: "server_error", status: http.StatusBadGateway, retryable: true},
		{name: "unauthorized", status: http.StatusUnauthorized, retryable: false},
		{name: "transport", transport: errors.New("timeout"), retryable: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
				if tc.transport != nil {
					return nil, tc.transport
				}
				return &http.Response{
					StatusCode: tc.status,
					Body:       io.NopCloser(strings.NewReader("")),
				}, nil
			})
			_, err := client.Synthesize(context.Background(), "hi", "")
			var provErr *domain.ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("error %T is not a ProviderError", err)
			}
			if provErr.Retryable != tc.retryable {
				t.Fatalf("Retryable = %v, want %v", provErr.Retryable, tc.retryable)
			}
		})
	}
}

func TestVoicesCatalog(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/v1/voices" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		body := `{"voices":[{"voice_id":"adam","name":"Adam","category":"premade"},{"voice_id":"rachel","name":"Rachel","category":"premade"}]}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})
	voices, err := client.Voices(context.Background())
	if err != nil {
		t.Fatalf("Voices returned error: %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("len = %d, want 2", len(voices))
	}
	if voices[0].ID != "adam" || voices[1].Name != "Rachel" {
		t.Fatalf("voices = %+v", voices)
	}
}
