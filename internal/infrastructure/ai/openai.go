// Package ai implements the outbound chat-completion port against an
// OpenAI-compatible HTTP endpoint. The API key is injected at construction
// time from configuration and never logged.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"
	defaultTimeout = 30 * time.Second

	temperature = 0.7
)

// Config holds the provider settings, sourced from the environment.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client calls the chat-completions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client, filling in defaults for base URL, model, and
// timeout when unset.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one chat-completion request and returns the assistant reply.
// Upstream failures are mapped to stable domain errors: 401 means the key is
// invalid, 429 means rate limited, 5xx means the provider is down.
func (c *Client) Complete(ctx context.Context, system string, history []domain.ChatMessage, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrAdvisorKeyInvalid
	}

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", domain.ErrAdvisorKeyInvalid
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", domain.ErrAdvisorRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		return "", domain.ErrAdvisorUpstream
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("upstream_error", msg).Msg("chat completion rejected")
		return "", fmt.Errorf("chat completion: %s: %w", msg, domain.ErrAdvisorUpstream)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices: %w", domain.ErrAdvisorUpstream)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
