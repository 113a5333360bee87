package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// ClaudeProvider implements Generator against the Anthropic Messages API.
type ClaudeProvider struct {
	apiKey     string
	model      string
	maxTokens  int
	baseURL    string
	httpClient *http.Client
}

// ClaudeOption customises a ClaudeProvider.
type ClaudeOption func(*ClaudeProvider)

// WithBaseURL points the provider at a different API host (used by tests).
func WithBaseURL(u string) ClaudeOption {
	return func(p *ClaudeProvider) { p.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default 30s-timeout client.
func WithHTTPClient(c *http.Client) ClaudeOption {
	return func(p *ClaudeProvider) { p.httpClient = c }
}

// NewClaudeProvider returns a provider for apiKey. Empty model and non-positive
// maxTokens fall back to the defaults.
func NewClaudeProvider(apiKey, model string, maxTokens int, opts ...ClaudeOption) (*ClaudeProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultClaudeModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	p := &ClaudeProvider{
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		baseURL:    anthropicBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Generate posts one user turn with the assembled system prompt and returns the reply text.
func (p *ClaudeProvider) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	reqBody, err := json.Marshal(messagesRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: userMessage}},
	})
	if err != nil {
		return "", fmt.Errorf("claude: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("claude: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("claude: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("claude: api error status=%d body=%s", resp.StatusCode, body)
		return "", &UpstreamError{Provider: "claude", Status: resp.StatusCode, Body: string(body)}
	}

	var mr messagesResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return "", fmt.Errorf("claude: unmarshal response: %w", err)
	}
	return mr.replyText(), nil
}
