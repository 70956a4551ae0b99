package ai

import "context"

// StreamProvider is an optional interface. Providers may implement streaming chat.
// Both channels are closed when the provider is done; errs carries at most one error and
// is written before chunks is closed.
type StreamProvider interface {
	StreamChat(ctx context.Context, messages []Message) (<-chan string, <-chan error)
}

type StreamState int

const (
	StreamNotStarted StreamState = iota
	StreamStreaming
	StreamCompleted
	StreamFailed
)

func (s StreamState) String() string {
	switch s {
	case StreamNotStarted:
		return "not_started"
	case StreamStreaming:
		return "streaming"
	case StreamCompleted:
		return "completed"
	case StreamFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stream is a one-shot, forward-only sequence of text fragments from a provider.
//
//	defer s.Close()
//	for s.Next() {
//		fmt.Print(s.Text())
//	}
//	if err := s.Err(); err != nil { ... }
//
// Next returns false once the stream is Completed or Failed; Err tells the two apart.
// A Stream is not safe for concurrent use.
type Stream struct {
	provider string
	chunks   <-chan string
	errs     <-chan error
	cancel   context.CancelFunc

	state StreamState
	cur   string
	err   error
	count int
}

func newStream(provider string, chunks <-chan string, errs <-chan error, cancel context.CancelFunc) *Stream {
	return &Stream{provider: provider, chunks: chunks, errs: errs, cancel: cancel}
}

func (s *Stream) Next() bool {
	if s.state == StreamCompleted || s.state == StreamFailed {
		return false
	}
	s.state = StreamStreaming

	c, ok := <-s.chunks
	if ok {
		s.cur = c
		s.count++
		return true
	}

	s.cur = ""
	if err := <-s.errs; err != nil {
		s.finish(StreamFailed, upstream(s.provider, err))
	} else {
		s.finish(StreamCompleted, nil)
	}
	return false
}

// Text is the fragment read by the last successful Next.
func (s *Stream) Text() string { return s.cur }

func (s *Stream) Err() error { return s.err }

func (s *Stream) State() StreamState { return s.state }

// Chunks is the number of fragments delivered so far.
func (s *Stream) Chunks() int { return s.count }

// Close abandons the stream and releases the provider connection. Closing a stream that
// has not finished moves it to Failed with context.Canceled.
func (s *Stream) Close() error {
	if s.state == StreamCompleted || s.state == StreamFailed {
		return nil
	}
	s.finish(StreamFailed, upstream(s.provider, context.Canceled))
	// unblock the producer until it observes cancellation
	for range s.chunks {
	}
	return nil
}

func (s *Stream) finish(state StreamState, err error) {
	s.state = state
	s.err = err
	if s.cancel != nil {
		s.cancel()
	}
}
