package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const GeminiModel = "gemini-2.5-flash"

// GeminiProvider calls the Gemini API through the genai SDK.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float64
}

// NewGeminiProvider builds the SDK client. baseURL is only set in tests.
func NewGeminiProvider(ctx context.Context, apiKey, baseURL string, opts ProviderOptions) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if opts.Model == "" {
		opts.Model = GeminiModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &GeminiProvider{client: client, model: opts.Model, temperature: opts.Temperature}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

// request splits system messages into the SystemInstruction; Gemini has no system role.
func (p *GeminiProvider) request(messages []Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(p.temperature)),
	}
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	return contents, cfg
}

func (p *GeminiProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	contents, cfg := p.request(messages)
	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return resp.Text(), nil
}

func (p *GeminiProvider) StreamChat(ctx context.Context, messages []Message) (<-chan string, <-chan error) {
	chunks := make(chan string, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		contents, cfg := p.request(messages)
		finished := false
		for resp, err := range p.client.Models.GenerateContentStream(ctx, p.model, contents, cfg) {
			if err != nil {
				errs <- fmt.Errorf("gemini: %w", err)
				return
			}
			if resp == nil {
				continue
			}
			if text := resp.Text(); text != "" {
				if !send(ctx, chunks, text) {
					errs <- ctx.Err()
					return
				}
			}
			for _, c := range resp.Candidates {
				if c != nil && c.FinishReason != "" {
					finished = true
				}
			}
		}
		if !finished {
			errs <- ErrStreamTruncated
		}
	}()

	return chunks, errs
}
