package client

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/suPer8Hu/interview-lens/internal/schema"
)

// ErrTruncated means the connection closed before an end frame arrived. The server ends a
// stream this way when the model fails after tokens were already sent.
var ErrTruncated = errors.New("stream ended without an end frame")

// ReadEvents decodes server-sent events from r and calls fn for each one, through the end
// frame. Multi-line data fields are joined with "\n"; comments and other fields are skipped.
func ReadEvents(r io.Reader, fn func(schema.StreamEvent) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var data []string
	dispatch := func() (bool, error) {
		if len(data) == 0 {
			return false, nil
		}
		payload := strings.Join(data, "\n")
		data = data[:0]

		var ev schema.StreamEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return false, fmt.Errorf("decode frame %q: %w", payload, err)
		}
		if ev.Type == schema.EventError {
			return false, fmt.Errorf("server error: %s", ev.Data)
		}
		if err := fn(ev); err != nil {
			return false, err
		}
		return ev.Type == schema.EventEnd, nil
	}

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			done, err := dispatch()
			if err != nil || done {
				return err
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		if v, ok := strings.CutPrefix(line, "data:"); ok {
			data = append(data, strings.TrimPrefix(v, " "))
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	// a final frame without its blank line still counts
	done, err := dispatch()
	if err != nil {
		return err
	}
	if !done {
		return ErrTruncated
	}
	return nil
}
