package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL", "PORT", "CORS_ALLOWED_ORIGINS",
		"DATABASE_DRIVER", "DATABASE_URI", "REDIS_ADDR", "REDIS_PASSWORD", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected model %q", cfg.Gemini.Model)
	}
	if cfg.Debate.SummaryWords != 25 {
		t.Errorf("expected 25 summary words, got %d", cfg.Debate.SummaryWords)
	}
	if len(cfg.Server.AllowedOrigins) != len(DefaultAllowedOrigins) {
		t.Errorf("expected default origins, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Database.Driver != "" {
		t.Errorf("archive should be disabled by default, got %q", cfg.Database.Driver)
	}
	if cfg.Gemini.Temperature == nil || *cfg.Gemini.Temperature != 0.7 {
		t.Errorf("expected default temperature 0.7, got %v", cfg.Gemini.Temperature)
	}
	if cfg.Gemini.TimeoutSeconds != 0 {
		t.Errorf("model calls should have no deadline by default, got %ds", cfg.Gemini.TimeoutSeconds)
	}
}

func TestLoadConfigGeminiTuning(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name        string
		yml         string
		temperature float32
		timeout     int
		wantErr     bool
	}{
		{"zero temperature is kept", "gemini:\n  temperature: 0\n", 0, 0, false},
		{"explicit timeout", "gemini:\n  temperature: 1.5\n  timeoutSeconds: 30\n", 1.5, 30, false},
		{"negative timeout", "gemini:\n  timeoutSeconds: -1\n", 0, 0, true},
		{"temperature out of range", "gemini:\n  temperature: 3\n", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(tt.yml), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Gemini.Temperature == nil || *cfg.Gemini.Temperature != tt.temperature {
				t.Errorf("expected temperature %v, got %v", tt.temperature, cfg.Gemini.Temperature)
			}
			if cfg.Gemini.TimeoutSeconds != tt.timeout {
				t.Errorf("expected timeout %d, got %d", tt.timeout, cfg.Gemini.TimeoutSeconds)
			}
		})
	}
}

func TestLoadConfigFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
server:
  port: 9000
gemini:
  apiKey: from-file
  model: gemini-test
debate:
  sequential: true
liveCounter:
  strictRounds: true
database:
  driver: sqlite
  uri: ${TEST_DB_PATH}
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_DB_PATH", "/tmp/debates.db")
	t.Setenv("GOOGLE_API_KEY", "from-env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Gemini.ApiKey != "from-env" {
		t.Errorf("env key should win, got %q", cfg.Gemini.ApiKey)
	}
	if cfg.Gemini.Model != "gemini-test" {
		t.Errorf("unexpected model %q", cfg.Gemini.Model)
	}
	if !cfg.Debate.Sequential || !cfg.LiveCounter.StrictRounds {
		t.Errorf("expected sequential and strict rounds to be set")
	}
	if cfg.Database.URI != "/tmp/debates.db" {
		t.Errorf("expected expanded uri, got %q", cfg.Database.URI)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "eighty"}},
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "postgres", "DATABASE_URI": "x"}},
		{"driver without uri", map[string]string{"DATABASE_DRIVER": "mongo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(""); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	t.Setenv("DEBATEBOT_DOTENV_TEST", "")
	os.Unsetenv("DEBATEBOT_DOTENV_TEST")
	if err := os.WriteFile(path, []byte("DEBATEBOT_DOTENV_TEST=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != path {
		t.Errorf("expected %s to be loaded, got %q", path, loaded)
	}
	if got := os.Getenv("DEBATEBOT_DOTENV_TEST"); got != "from-dotenv" {
		t.Errorf("expected value from .env, got %q", got)
	}
}
