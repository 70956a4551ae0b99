package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	ZhipuBaseURL      = "https://open.bigmodel.cn/api/paas/v4"
	ZhipuModel        = "glm-4-flash"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	OpenRouterModel   = "openrouter/auto"
)

// ChatCompletionsProvider talks to any OpenAI-compatible /chat/completions endpoint.
// ZhipuAI and OpenRouter are both served by it.
type ChatCompletionsProvider struct {
	ProviderName string
	BaseURL      string
	APIKey       string
	Model        string
	Temperature  float64
	// Extra headers sent on every request (OpenRouter attribution).
	Headers map[string]string
	Client  *http.Client
}

type completionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionReq struct {
	Model       string          `json:"model"`
	Messages    []completionMsg `json:"messages"`
	Temperature float64         `json:"temperature"`
	Stream      bool            `json:"stream"`
}

type completionErr struct {
	Message string `json:"message"`
}

type completionResp struct {
	Choices []struct {
		Message completionMsg `json:"message"`
	} `json:"choices"`
	Error *completionErr `json:"error,omitempty"`
}

type completionStreamResp struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *completionErr `json:"error,omitempty"`
}

func NewZhipuProvider(baseURL, apiKey string, opts ProviderOptions) *ChatCompletionsProvider {
	if baseURL == "" {
		baseURL = ZhipuBaseURL
	}
	if opts.Model == "" {
		opts.Model = ZhipuModel
	}
	return newChatCompletionsProvider("zhipuai", baseURL, apiKey, opts)
}

func NewOpenRouterProvider(baseURL, apiKey, siteURL, appName string, opts ProviderOptions) *ChatCompletionsProvider {
	if baseURL == "" {
		baseURL = OpenRouterBaseURL
	}
	if opts.Model == "" {
		opts.Model = OpenRouterModel
	}
	p := newChatCompletionsProvider("openrouter", baseURL, apiKey, opts)
	if siteURL != "" {
		p.Headers["HTTP-Referer"] = siteURL
	}
	if appName != "" {
		p.Headers["X-Title"] = appName
	}
	return p
}

func newChatCompletionsProvider(name, baseURL, apiKey string, opts ProviderOptions) *ChatCompletionsProvider {
	return &ChatCompletionsProvider{
		ProviderName: name,
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        opts.Model,
		Temperature:  opts.Temperature,
		Headers:      make(map[string]string),
		// no client timeout: deadlines come from ctx
		Client: &http.Client{Timeout: 0},
	}
}

func (p *ChatCompletionsProvider) Name() string { return p.ProviderName }

func (p *ChatCompletionsProvider) newRequest(ctx context.Context, messages []Message, stream bool) (*http.Request, error) {
	if p.Client == nil {
		return nil, fmt.Errorf("%s: http client is nil", p.ProviderName)
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return nil, fmt.Errorf("%s: api key is required", p.ProviderName)
	}
	model := strings.TrimSpace(p.Model)
	if model == "" {
		return nil, fmt.Errorf("%s: model is required", p.ProviderName)
	}

	msgs := make([]completionMsg, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, completionMsg{Role: m.Role, Content: m.Content})
	}
	b, err := json.Marshal(completionReq{
		Model:       model,
		Messages:    msgs,
		Temperature: p.Temperature,
		Stream:      stream,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(p.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (p *ChatCompletionsProvider) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("%s: status %d", p.ProviderName, resp.StatusCode)
	}
	return fmt.Errorf("%s: status %d: %s", p.ProviderName, resp.StatusCode, msg)
}

func (p *ChatCompletionsProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	req, err := p.newRequest(ctx, messages, false)
	if err != nil {
		return "", err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", p.statusError(resp)
	}

	var decoded completionResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", p.ProviderName, err)
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", fmt.Errorf("%s: %s", p.ProviderName, decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%s: empty response", p.ProviderName)
	}
	return decoded.Choices[0].Message.Content, nil
}

// StreamChat streams content deltas from an SSE response. The stream is only clean when
// the provider sends "[DONE]" or a finish_reason; anything else is ErrStreamTruncated.
func (p *ChatCompletionsProvider) StreamChat(ctx context.Context, messages []Message) (<-chan string, <-chan error) {
	chunks := make(chan string, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		req, err := p.newRequest(ctx, messages, true)
		if err != nil {
			errs <- err
			return
		}

		resp, err := p.Client.Do(req)
		if err != nil {
			errs <- err
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errs <- p.statusError(resp)
			return
		}

		sc := bufio.NewScanner(resp.Body)
		buf := make([]byte, 0, 64*1024)
		sc.Buffer(buf, 2*1024*1024)

		finished := false
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "[DONE]" {
				return
			}
			var decoded completionStreamResp
			if err := json.Unmarshal([]byte(data), &decoded); err != nil {
				errs <- fmt.Errorf("%s: decode chunk: %w", p.ProviderName, err)
				return
			}
			if decoded.Error != nil && decoded.Error.Message != "" {
				errs <- fmt.Errorf("%s: %s", p.ProviderName, decoded.Error.Message)
				return
			}
			if len(decoded.Choices) == 0 {
				continue
			}
			if delta := decoded.Choices[0].Delta.Content; delta != "" {
				if !send(ctx, chunks, delta) {
					errs <- ctx.Err()
					return
				}
			}
			if decoded.Choices[0].FinishReason != "" {
				finished = true
			}
		}

		if err := sc.Err(); err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			errs <- err
			return
		}
		if !finished {
			errs <- ErrStreamTruncated
		}
	}()

	return chunks, errs
}

// send delivers one chunk unless ctx is cancelled first.
func send(ctx context.Context, chunks chan<- string, c string) bool {
	select {
	case chunks <- c:
		return true
	case <-ctx.Done():
		return false
	}
}
