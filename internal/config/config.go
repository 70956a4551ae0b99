package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ConfigurationError means the process must not start serving.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

type Config struct {
	Port string

	// AI provider
	AIProvider        string
	Temperature       float64
	UpstreamTimeout   time.Duration
	StreamTimeout     time.Duration
	ZhipuAPIKey       string
	ZhipuModel        string
	ZhipuBaseURL      string
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterSiteURL string
	OpenRouterAppName string
	OllamaBaseURL     string
	OllamaModel       string
	GeminiAPIKey      string
	GeminiModel       string

	// exchange log
	DBDriver string
	DBDSN    string

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

// Model is the model name configured for the selected provider ("" means provider default).
func (c Config) Model() string {
	switch c.AIProvider {
	case "zhipuai":
		return c.ZhipuModel
	case "openrouter":
		return c.OpenRouterModel
	case "ollama":
		return c.OllamaModel
	case "gemini":
		return c.GeminiModel
	}
	return ""
}

func Load() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	aiProvider := strings.ToLower(strings.TrimSpace(os.Getenv("AI_PROVIDER")))
	if aiProvider == "" {
		aiProvider = "zhipuai"
	}

	temperature := 0.7
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 || n > 2 {
			return Config{}, &ConfigurationError{Key: "LLM_TEMPERATURE", Reason: fmt.Sprintf("want a number in [0, 2], got %q", v)}
		}
		temperature = n
	}

	upstreamTimeout, err := duration("UPSTREAM_TIMEOUT", 90*time.Second)
	if err != nil {
		return Config{}, err
	}
	streamTimeout, err := duration("STREAM_TIMEOUT", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	zhipuModel := os.Getenv("ZHIPUAI_MODEL")
	if zhipuModel == "" {
		zhipuModel = "glm-4-flash"
	}

	openRouterBaseURL := os.Getenv("OPENROUTER_BASE_URL")
	if openRouterBaseURL == "" {
		openRouterBaseURL = "https://openrouter.ai/api/v1"
	}
	openRouterModel := os.Getenv("OPENROUTER_MODEL")
	if openRouterModel == "" {
		openRouterModel = "openrouter/auto"
	}

	ollamaBaseURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434"
	}
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "llama3:latest"
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		geminiKey = os.Getenv("GOOGLE_API_KEY")
	}
	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.5-flash"
	}

	dbDriver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if dbDriver == "" {
		dbDriver = "sqlite"
	}
	dsn := os.Getenv("DB_DSN")
	switch dbDriver {
	case "sqlite":
		if dsn == "" {
			dsn = "interviewlens.db"
		}
	case "mysql":
		// DSN demo：
		// app:apppass@tcp(127.0.0.1:3306)/interview_lens?charset=utf8mb4&parseTime=true&loc=Local
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				"app", "apppass", "127.0.0.1", "3306", "interview_lens",
			)
		}
	case "none":
	default:
		return Config{}, &ConfigurationError{Key: "DB_DRIVER", Reason: fmt.Sprintf("unsupported driver %q (sqlite, mysql, none)", dbDriver)}
	}

	origins := []string{"*"}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	if err := checkOrigins(origins); err != nil {
		return Config{}, err
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	cfg := Config{
		Port: port,

		AIProvider:        aiProvider,
		Temperature:       temperature,
		UpstreamTimeout:   upstreamTimeout,
		StreamTimeout:     streamTimeout,
		ZhipuAPIKey:       os.Getenv("ZHIPUAI_API_KEY"),
		ZhipuModel:        zhipuModel,
		ZhipuBaseURL:      os.Getenv("ZHIPUAI_BASE_URL"),
		OpenRouterBaseURL: openRouterBaseURL,
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:   openRouterModel,
		OpenRouterSiteURL: os.Getenv("OPENROUTER_SITE_URL"),
		OpenRouterAppName: os.Getenv("OPENROUTER_APP_NAME"),
		OllamaBaseURL:     ollamaBaseURL,
		OllamaModel:       ollamaModel,
		GeminiAPIKey:      geminiKey,
		GeminiModel:       geminiModel,

		DBDriver: dbDriver,
		DBDSN:    dsn,

		CORSAllowedOrigins: origins,

		LogLevel:  logLevel,
		LogFormat: os.Getenv("LOG_FORMAT"),
	}
	if err := cfg.requireCredential(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// requireCredential refuses to start without the selected provider's API key.
func (c Config) requireCredential() error {
	var key, value string
	switch c.AIProvider {
	case "zhipuai":
		key, value = "ZHIPUAI_API_KEY", c.ZhipuAPIKey
	case "openrouter":
		key, value = "OPENROUTER_API_KEY", c.OpenRouterAPIKey
	case "gemini":
		key, value = "GEMINI_API_KEY", c.GeminiAPIKey
	case "ollama":
		return nil
	default:
		return &ConfigurationError{Key: "AI_PROVIDER", Reason: fmt.Sprintf("unsupported provider %q", c.AIProvider)}
	}
	if strings.TrimSpace(value) == "" {
		return &ConfigurationError{Key: key, Reason: "is required"}
	}
	return nil
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, &ConfigurationError{Key: key, Reason: fmt.Sprintf("want a positive duration, got %q", v)}
	}
	return d, nil
}

// checkOrigins rejects values the CORS middleware would panic on.
func checkOrigins(origins []string) error {
	if len(origins) == 0 {
		return &ConfigurationError{Key: "CORS_ALLOWED_ORIGINS", Reason: "no origins listed"}
	}
	for _, o := range origins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return &ConfigurationError{Key: "CORS_ALLOWED_ORIGINS", Reason: fmt.Sprintf("origin %q must be * or start with http:// or https://", o)}
		}
	}
	return nil
}
