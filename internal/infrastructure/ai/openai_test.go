package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

func TestClient_Complete(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  patch the server  "}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"}, zerolog.Nop())

	history := []domain.ChatMessage{{Role: "user", Content: "earlier question"}}
	answer, err := client.Complete(context.Background(), "you are helpful", history, "what now?", 400)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if answer != "patch the server" {
		t.Fatalf("expected trimmed answer, got %q", answer)
	}

	if captured.Model != "test-model" {
		t.Fatalf("unexpected model: %q", captured.Model)
	}
	if captured.MaxTokens != 400 {
		t.Fatalf("unexpected max_tokens: %d", captured.MaxTokens)
	}
	if len(captured.Messages) != 3 {
		t.Fatalf("expected system+history+user messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "you are helpful" {
		t.Fatalf("system message not first: %+v", captured.Messages[0])
	}
	if captured.Messages[2].Role != "user" || captured.Messages[2].Content != "what now?" {
		t.Fatalf("user message not last: %+v", captured.Messages[2])
	}
}

func TestClient_Complete_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrAdvisorKeyInvalid},
		{"rate limited", http.StatusTooManyRequests, domain.ErrAdvisorRateLimited},
		{"server error", http.StatusInternalServerError, domain.ErrAdvisorUpstream},
		{"bad gateway", http.StatusBadGateway, domain.ErrAdvisorUpstream},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			client := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, zerolog.Nop())
			if _, err := client.Complete(context.Background(), "sys", nil, "prompt", 100); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClient_Complete_MissingKey(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())

	if _, err := client.Complete(context.Background(), "sys", nil, "prompt", 100); !errors.Is(err, domain.ErrAdvisorKeyInvalid) {
		t.Fatalf("expected ErrAdvisorKeyInvalid, got %v", err)
	}
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, zerolog.Nop())
	if _, err := client.Complete(context.Background(), "sys", nil, "prompt", 100); !errors.Is(err, domain.ErrAdvisorUpstream) {
		t.Fatalf("expected ErrAdvisorUpstream, got %v", err)
	}
}
