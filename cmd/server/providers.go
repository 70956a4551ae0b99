package main

import (
	"context"

	"github.com/suPer8Hu/interview-lens/internal/ai"
	"github.com/suPer8Hu/interview-lens/internal/config"
)

// newRegistry registers every provider the service can talk to; AI_PROVIDER picks one.
func newRegistry(cfg config.Config) *ai.Registry {
	reg := ai.NewRegistry()

	reg.Register("zhipuai", func(ctx context.Context, opts ai.ProviderOptions) (ai.Provider, error) {
		return ai.NewZhipuProvider(cfg.ZhipuBaseURL, cfg.ZhipuAPIKey, opts), nil
	})
	reg.Register("openrouter", func(ctx context.Context, opts ai.ProviderOptions) (ai.Provider, error) {
		return ai.NewOpenRouterProvider(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterSiteURL, cfg.OpenRouterAppName, opts), nil
	})
	reg.Register("ollama", func(ctx context.Context, opts ai.ProviderOptions) (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, opts), nil
	})
	reg.Register("gemini", func(ctx context.Context, opts ai.ProviderOptions) (ai.Provider, error) {
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiAPIKey, "", opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	return reg
}
