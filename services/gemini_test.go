package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// geminiServer answers generateContent calls with a single candidate
// carrying text, and records the request body it received
func geminiServer(t *testing.T, text string, body *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		if body != nil {
			json.NewDecoder(r.Body).Decode(body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiGeneratorReturnsTextVerbatim(t *testing.T) {
	raw := "\n  First point.\n\nSecond point.  \n"
	srv := geminiServer(t, raw, nil)

	gen, err := NewGeminiGenerator(context.Background(), "test-key", GeminiOptions{Model: "gemini-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := gen.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != raw {
		t.Errorf("expected model text unchanged, got %q", got)
	}
}

func TestGeminiGeneratorRejectsBlankText(t *testing.T) {
	srv := geminiServer(t, " \n\t", nil)

	gen, err := NewGeminiGenerator(context.Background(), "test-key", GeminiOptions{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := gen.Generate(context.Background(), "prompt"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGeminiGeneratorSendsZeroTemperature(t *testing.T) {
	var body map[string]any
	srv := geminiServer(t, "ok", &body)

	zero := float32(0)
	gen, err := NewGeminiGenerator(context.Background(), "test-key", GeminiOptions{Temperature: &zero, BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := gen.Generate(context.Background(), "prompt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, _ := body["generationConfig"].(map[string]any)
	if temp, ok := cfg["temperature"]; !ok || temp != float64(0) {
		t.Errorf("expected temperature 0 in request, got %v", body["generationConfig"])
	}
}
