package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Generator using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
	maxTokens int32
}

// NewGeminiProvider initializes a new Gemini client.
// Extra client options (endpoint, http client) are passed through to genai.NewClient.
func NewGeminiProvider(ctx context.Context, apiKey, model string, maxTokens int, opts ...option.ClientOption) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		modelName: model,
		maxTokens: int32(maxTokens),
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Generate sends the assembled prompt as the system instruction and the raw message as user text.
// A model value is built per call because SystemInstruction changes with every request.
func (p *GeminiProvider) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	model := p.client.GenerativeModel(p.modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	model.SetMaxOutputTokens(p.maxTokens)
	model.SetTemperature(0.4)

	resp, err := model.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return "", &UpstreamError{Provider: "gemini", Status: http.StatusBadGateway, Body: err.Error()}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return FallbackReply, nil
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			reply.WriteString(string(txt))
		}
	}
	if reply.Len() == 0 {
		return FallbackReply, nil
	}
	return reply.String(), nil
}
