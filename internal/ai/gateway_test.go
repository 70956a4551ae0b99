package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

type chatOnlyProvider struct{}

func (chatOnlyProvider) Name() string { return "chat-only" }

func (chatOnlyProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	return "ok", nil
}

func TestGatewayRun_ReturnsText(t *testing.T) {
	p := &scriptedProvider{chunks: []string{"hi ", "there"}}
	g := NewGateway(p, GatewayOptions{})

	text, err := g.Run(context.Background(), []Message{{Role: RoleUser, Content: "hello"}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if text != "hi there" {
		t.Fatalf("unexpected text: %q", text)
	}
	if p.calls.Load() != 1 {
		t.Fatalf("expected exactly one provider call, got %d", p.calls.Load())
	}
}

func TestGatewayRun_WrapsProviderError(t *testing.T) {
	cause := errors.New("boom")
	p := &scriptedProvider{err: cause}
	g := NewGateway(p, GatewayOptions{})

	_, err := g.Run(context.Background(), nil)
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UpstreamError, got %T %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if p.calls.Load() != 1 {
		t.Fatalf("upstream errors must not be retried, got %d calls", p.calls.Load())
	}
}

func TestGatewayRun_Timeout(t *testing.T) {
	g := NewGateway(&endlessProvider{released: make(chan struct{})}, GatewayOptions{Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := g.Run(context.Background(), nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not enforced")
	}
}

func TestGatewayStream_RequiresStreamingProvider(t *testing.T) {
	g := NewGateway(chatOnlyProvider{}, GatewayOptions{})

	_, err := g.Stream(context.Background(), nil)
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if g.ProviderName() != "chat-only" {
		t.Fatalf("unexpected provider name %q", g.ProviderName())
	}
}

func TestRegistry_GetAndUnknown(t *testing.T) {
	reg := NewRegistry()
	var got ProviderOptions
	reg.Register(" Fake ", func(ctx context.Context, opts ProviderOptions) (Provider, error) {
		got = opts
		return chatOnlyProvider{}, nil
	})

	p, err := reg.Get(context.Background(), "FAKE", ProviderOptions{Model: "m", Temperature: 0.3})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name() != "chat-only" || got.Model != "m" || got.Temperature != 0.3 {
		t.Fatalf("factory not called with options: %+v", got)
	}

	_, err = reg.Get(context.Background(), "nope", ProviderOptions{})
	var unknown *ErrUnknownProvider
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *ErrUnknownProvider, got %v", err)
	}
	if len(unknown.Known) != 1 || unknown.Known[0] != "fake" {
		t.Fatalf("unexpected known list: %v", unknown.Known)
	}
}
