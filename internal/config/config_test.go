package config

import (
	"errors"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so host settings do not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "AI_PROVIDER", "LLM_TEMPERATURE", "UPSTREAM_TIMEOUT", "STREAM_TIMEOUT",
		"ZHIPUAI_API_KEY", "ZHIPUAI_MODEL", "ZHIPUAI_BASE_URL",
		"OPENROUTER_BASE_URL", "OPENROUTER_API_KEY", "OPENROUTER_MODEL", "OPENROUTER_SITE_URL", "OPENROUTER_APP_NAME",
		"OLLAMA_BASE_URL", "OLLAMA_MODEL", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL",
		"DB_DRIVER", "DB_DSN", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZHIPUAI_API_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3001" || cfg.AIProvider != "zhipuai" || cfg.Model() != "glm-4-flash" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Temperature != 0.7 || cfg.UpstreamTimeout != 90*time.Second || cfg.StreamTimeout != 5*time.Minute {
		t.Fatalf("unexpected model defaults: %+v", cfg)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBDSN != "interviewlens.db" {
		t.Fatalf("unexpected db defaults: %s %s", cfg.DBDriver, cfg.DBDSN)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors default %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	var ce *ConfigurationError
	if !errors.As(err, &ce) || ce.Key != "ZHIPUAI_API_KEY" {
		t.Fatalf("expected missing ZHIPUAI_API_KEY, got %v", err)
	}
}

func TestLoad_OllamaNeedsNoKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "Ollama")
	t.Setenv("OLLAMA_MODEL", "qwen2:7b")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AIProvider != "ollama" || cfg.Model() != "qwen2:7b" {
		t.Fatalf("unexpected provider config %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("GOOGLE_API_KEY", "g")
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("UPSTREAM_TIMEOUT", "15s")
	t.Setenv("DB_DRIVER", "none")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://lens.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiAPIKey != "g" || cfg.Port != "8080" || cfg.Temperature != 0.2 || cfg.UpstreamTimeout != 15*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.DBDriver != "none" {
		t.Fatalf("expected db disabled, got %s", cfg.DBDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://lens.example.com" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad temperature": {"LLM_TEMPERATURE", "hot"},
		"bad timeout":     {"UPSTREAM_TIMEOUT", "soon"},
		"bad provider":    {"AI_PROVIDER", "skynet"},
		"bad driver":      {"DB_DRIVER", "oracle"},
		"origin scheme":   {"CORS_ALLOWED_ORIGINS", "example.com"},
		"no origins":      {"CORS_ALLOWED_ORIGINS", ","},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ZHIPUAI_API_KEY", "secret")
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			var ce *ConfigurationError
			if !errors.As(err, &ce) || ce.Key != kv[0] {
				t.Fatalf("expected configuration error for %s, got %v", kv[0], err)
			}
		})
	}
}
