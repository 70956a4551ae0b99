package ai

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultUpstreamTimeout = 90 * time.Second
	DefaultStreamTimeout   = 5 * time.Minute
)

var errNoStreaming = errors.New("provider does not support streaming")

type GatewayOptions struct {
	// Timeout bounds a synchronous Run.
	Timeout time.Duration
	// StreamTimeout bounds a whole stream, first byte to last.
	StreamTimeout time.Duration
}

// Gateway is the single entry point to the configured model provider. It holds no per-call
// state and is safe for concurrent use.
type Gateway struct {
	provider      Provider
	timeout       time.Duration
	streamTimeout time.Duration
}

func NewGateway(p Provider, opts GatewayOptions) *Gateway {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultUpstreamTimeout
	}
	if opts.StreamTimeout <= 0 {
		opts.StreamTimeout = DefaultStreamTimeout
	}
	return &Gateway{provider: p, timeout: opts.Timeout, streamTimeout: opts.StreamTimeout}
}

func (g *Gateway) ProviderName() string { return g.provider.Name() }

// Run blocks until the provider returns the whole completion. Failures are *UpstreamError
// and are never retried.
func (g *Gateway) Run(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.provider.Chat(ctx, messages)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", upstream(g.provider.Name(), err)
	}
	return text, nil
}

// Stream starts a streaming completion. The returned Stream owns the provider connection
// and must be closed by the caller; cancelling ctx has the same effect.
func (g *Gateway) Stream(ctx context.Context, messages []Message) (*Stream, error) {
	sp, ok := g.provider.(StreamProvider)
	if !ok {
		return nil, upstream(g.provider.Name(), errNoStreaming)
	}

	ctx, cancel := context.WithTimeout(ctx, g.streamTimeout)
	chunks, errs := sp.StreamChat(ctx, messages)
	return newStream(g.provider.Name(), chunks, errs, cancel), nil
}
