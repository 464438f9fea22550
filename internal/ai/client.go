package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoCredential is returned by the disabled generator when no API key
// was configured. Operations translate it into their safe defaults.
var ErrNoCredential = errors.New("generative model credential not configured")

// GenOptions carries per-operation sampling parameters.
type GenOptions struct {
	Temperature     float32
	MaxOutputTokens int32
	JSONResponse    bool
}

// Generator abstracts the hosted generative-language endpoint.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenOptions) (string, error)
	Close() error
}

// GeminiGenerator implements Generator on the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoCredential
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate submits the prompt with the given sampling parameters and
// returns the model's text output.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, opts GenOptions) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxOutputTokens)
	}
	if opts.JSONResponse {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return textFromResponse(resp)
}

// Close releases resources held by the underlying client.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// DisabledGenerator is used when no credential is configured. Every call
// fails with ErrNoCredential so operations fall back to their defaults.
type DisabledGenerator struct{}

// Generate always fails with ErrNoCredential.
func (DisabledGenerator) Generate(ctx context.Context, prompt string, opts GenOptions) (string, error) {
	_ = ctx
	_ = prompt
	_ = opts
	return "", ErrNoCredential
}

// Close is a no-op.
func (DisabledGenerator) Close() error { return nil }
