// Package client talks to a running interview-lens server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/suPer8Hu/interview-lens/internal/schema"
)

// APIError is a non-2xx response decoded from the server's error payload.
type APIError struct {
	schema.ApiError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.ApiError.Error, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
	}
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var e APIError
	if err := json.Unmarshal(raw, &e.ApiError); err != nil || e.StatusCode == 0 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return &e
}

func (c *Client) Chat(ctx context.Context, req schema.ChatRequest) (schema.ChatResponse, error) {
	resp, err := c.post(ctx, "/api/chat", req)
	if err != nil {
		return schema.ChatResponse{}, err
	}
	defer resp.Body.Close()

	var out schema.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return schema.ChatResponse{}, fmt.Errorf("decode chat response: %w", err)
	}
	return out, nil
}

// ChatStream posts a chat message to /api/chat/stream and calls onToken for each fragment.
// It returns the message id from the start frame.
func (c *Client) ChatStream(ctx context.Context, req schema.ChatRequest, onToken func(string)) (string, error) {
	return c.stream(ctx, "/api/chat/stream", req, onToken)
}

// Analyze streams the analysis of transcript.
func (c *Client) Analyze(ctx context.Context, transcript string, onToken func(string)) (string, error) {
	return c.stream(ctx, "/api/analyze", schema.AnalyzeRequest{Transcript: transcript}, onToken)
}

func (c *Client) stream(ctx context.Context, path string, body any, onToken func(string)) (string, error) {
	resp, err := c.post(ctx, path, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var messageID string
	err = ReadEvents(resp.Body, func(ev schema.StreamEvent) error {
		switch ev.Type {
		case schema.EventStart:
			messageID = ev.MessageID
		case schema.EventToken:
			if onToken != nil {
				onToken(ev.Data)
			}
		}
		return nil
	})
	return messageID, err
}
