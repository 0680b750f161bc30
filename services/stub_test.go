package services

import (
	"context"
	"strings"
	"sync"

	"debatebot/internal/logging"
)

var testLogger = logging.Discard()

// stubGenerator answers prompts with respond and records every prompt it saw
type stubGenerator struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.respond(prompt)
}

func (g *stubGenerator) seen() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

func fixed(text string) *stubGenerator {
	return &stubGenerator{respond: func(string) (string, error) { return text, nil }}
}

func failing(err error) *stubGenerator {
	return &stubGenerator{respond: func(string) (string, error) { return "", err }}
}

// promptWith returns the first recorded prompt containing all parts
func promptWith(prompts []string, parts ...string) (string, bool) {
outer:
	for _, p := range prompts {
		for _, part := range parts {
			if !strings.Contains(p, part) {
				continue outer
			}
		}
		return p, true
	}
	return "", false
}
