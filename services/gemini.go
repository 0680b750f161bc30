package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("model returned an empty response")

// Generator turns a prompt into model text. It is the only capability the
// services need from an LLM vendor.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GeminiOptions tunes the Gemini generator
type GeminiOptions struct {
	Model string
	// Temperature is left to the model default when nil
	Temperature *float32
	// Timeout bounds each call; zero means no deadline beyond ctx
	Timeout time.Duration
	// BaseURL overrides the Gemini API endpoint, e.g. for a proxy
	BaseURL string
}

// GeminiGenerator generates text with the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	opts   GeminiOptions
}

// NewGeminiGenerator creates a Gemini client. An empty apiKey lets the SDK
// pick the key up from GEMINI_API_KEY / GOOGLE_API_KEY.
func NewGeminiGenerator(ctx context.Context, apiKey string, opts GeminiOptions) (*GeminiGenerator, error) {
	config := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		config.APIKey = apiKey
	}
	if opts.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	if opts.Model == "" {
		opts.Model = defaultGeminiModel
	}
	return &GeminiGenerator{client: client, opts: opts}, nil
}

// Generate sends a single prompt and returns the response text as the model
// produced it. No retries are attempted and there is no deadline unless a
// Timeout is configured.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini client not initialized")
	}
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	var cfg *genai.GenerateContentConfig
	if g.opts.Temperature != nil {
		cfg = &genai.GenerateContentConfig{Temperature: genai.Ptr(*g.opts.Temperature)}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.opts.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// cleanModelOutput strips markdown code fences models like to wrap JSON in
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
