package text

import (
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

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	var captured openAIChatRequest
	client, err := NewOpenAIClient(OpenAIOptions{
		APIKey: "sk-test",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path != "/v1/chat/completions" {
				t.Fatalf("path = %q", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
				t.Fatalf("Authorization = %q", got)
			}
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"  step one  "}}]}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewOpenAIClient returned error: %v", err)
	}

	got, err := client.Complete(context.Background(), domain.Completion{
		SystemPrompt: "coach",
		UserPrompt:   "help",
		Temperature:  0.7,
		MaxTokens:    1500,
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "step one" {
		t.Fatalf("content = %q, want %q", got, "step one")
	}
	if captured.Model != "gpt-4o" {
		t.Fatalf("model = %q, want gpt-4o", captured.Model)
	}
	if captured.MaxTokens != 1500 {
		t.Fatalf("max_tokens = %d, want 1500", captured.MaxTokens)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v", captured.Messages)
	}
}

func TestOpenAIClientErrorClassification(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		status    int
		transport error
		retryable bool
	}{
		{name: "server_error", status: http.StatusInternalServerError, retryable: true},
		{name: "rate_limited", status: http.StatusTooManyRequests, retryable: true},
		{name: "bad_request", status: http.StatusBadRequest, retryable: false},
		{name: "policy_rejection", status: http.StatusUnprocessableEntity, retryable: false},
		{name: "transport", transport: errors.New("connection refused"), retryable: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client, err := NewOpenAIClient(OpenAIOptions{
				APIKey: "sk-test",
				HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
					if tc.transport != nil {
						return nil, tc.transport
					}
					return jsonResponse(tc.status, `{}`), nil
				})},
			})
			if err != nil {
				t.Fatalf("NewOpenAIClient returned error: %v", err)
			}
			_, err = client.Complete(context.Background(), domain.Completion{UserPrompt: "x"})
			if err == nil {
				t.Fatal("expected error")
			}
			var provErr *domain.ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("error %T is not a ProviderError", err)
			}
			if provErr.Retryable != tc.retryable {
				t.Fatalf("Retryable = %v, want %v", provErr.Retryable, tc.retryable)
			}
			if !errors.Is(err, domain.ErrProviderFailure) {
				t.Fatal("error does not unwrap to ErrProviderFailure")
			}
		})
	}
}

func TestOpenAIClientEmptyCompletion(t *testing.T) {
	t.Parallel()
	client, err := NewOpenAIClient(OpenAIOptions{
		APIKey: "sk-test",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewOpenAIClient returned error: %v", err)
	}
	_, err = client.Complete(context.Background(), domain.Completion{UserPrompt: "x"})
	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error %T is not a ProviderError", err)
	}
	if provErr.Retryable {
		t.Fatal("empty completion should not be retryable")
	}
}

func TestNormalizeOpenAIModel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		input  string
		model  string
		reason string
	}{
		{name: "exact_default", input: "gpt-4o", model: "gpt-4o", reason: ""},
		{name: "exact_mini", input: "gpt-4o-mini", model: "gpt-4o-mini", reason: ""},
		{name: "alias_compact", input: "gpt4o", model: "gpt-4o", reason: "alias"},
		{name: "alias_dated", input: "gpt-4o-mini-2024-07-18", model: "gpt-4o-mini", reason: "alias"},
		{name: "alias_spaces", input: "GPT 4 o", model: "gpt-4o", reason: "alias"},
		{name: "unsupported", input: "gpt-3.5-turbo", model: "gpt-4o", reason: "defaulted"},
		{name: "empty", input: "", model: "gpt-4o", reason: ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gotModel, gotReason := normalizeOpenAIModel(tc.input)
			if gotModel != tc.model {
				t.Fatalf("model = %q, want %q", gotModel, tc.model)
			}
			if gotReason != tc.reason {
				t.Fatalf("reason = %q, want %q", gotReason, tc.reason)
			}
		})
	}
}

func TestNewOpenAIClientWarnsOnUnsupportedModel(t *testing.T) {
	t.Parallel()
	var capturedReason, capturedDetail string
	client, err := NewOpenAIClient(OpenAIOptions{
		APIKey: "sk-test",
		Model:  "gpt-5-preview",
		OnWarning: func(reason, detail string) {
			capturedReason = reason
			capturedDetail = detail
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("client is nil")
	}
	if capturedReason != "model_defaulted" {
		t.Fatalf("warning reason = %q, want %q", capturedReason, "model_defaulted")
	}
	if capturedDetail == "" {
		t.Fatal("expected warning detail to be set")
	}
}
