package ai

import (
	"errors"
	"fmt"
)

// ErrStreamTruncated reports a provider stream that ended without its end-of-stream marker.
var ErrStreamTruncated = errors.New("stream ended before completion")

// UpstreamError is returned for any failure talking to the model provider.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(provider string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Provider: provider, Err: err}
}
