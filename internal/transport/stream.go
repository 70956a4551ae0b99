package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/interview-lens/internal/ai"
	"github.com/suPer8Hu/interview-lens/internal/common"
	"github.com/suPer8Hu/interview-lens/internal/schema"
)

var errNoFlusher = errors.New("response writer cannot flush")

// UpstreamFailureMessage is what clients see when the model call fails. The full error
// only goes to the log.
const UpstreamFailureMessage = "model provider request failed"

// StreamResult summarizes what reached the client.
type StreamResult struct {
	// Started is true once the event-stream headers were written.
	Started   bool
	Completed bool
	// Cancelled means the client went away before the end frame.
	Cancelled bool
	Chunks    int
	Chars     int
	Status    int
	Err       error
}

type eventWriter struct {
	c       *gin.Context
	flusher http.Flusher
}

func (w *eventWriter) start() {
	w.c.Header("Content-Type", "text/event-stream")
	w.c.Header("Cache-Control", "no-cache")
	w.c.Header("Connection", "keep-alive")
	w.c.Header("X-Accel-Buffering", "no") // nginx
	w.c.Status(http.StatusOK)
	w.c.Writer.WriteHeaderNow()
}

func (w *eventWriter) send(ev schema.StreamEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.c.Writer, "data: %s\n\n", b); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

// Stream drains s onto the response as start, token and end frames and always closes s.
//
// Headers are held back until the first fragment arrives, so a provider that fails up front
// still gets a 500 ApiError. Once frames have been sent a failure only ends the response:
// no end frame is written and the client sees the stream stop early.
func Stream(c *gin.Context, s *ai.Stream, messageID string) StreamResult {
	defer s.Close()

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		common.Fail(c, http.StatusInternalServerError, "streaming unsupported")
		return StreamResult{Status: http.StatusInternalServerError, Err: errNoFlusher}
	}
	w := &eventWriter{c: c, flusher: flusher}
	ctx := c.Request.Context()

	res := StreamResult{}
	has := s.Next()
	if !has && s.Err() != nil {
		res.Err = s.Err()
		if ctx.Err() != nil {
			res.Cancelled = true
			return res
		}
		res.Status = http.StatusInternalServerError
		common.Fail(c, http.StatusInternalServerError, UpstreamFailureMessage)
		return res
	}

	w.start()
	res.Started = true
	res.Status = http.StatusOK
	if err := w.send(schema.StreamEvent{Type: schema.EventStart, MessageID: messageID}); err != nil {
		res.Cancelled, res.Err = true, err
		return res
	}

	for has {
		text := s.Text()
		if err := w.send(schema.StreamEvent{Type: schema.EventToken, Data: text}); err != nil {
			res.Cancelled, res.Err = true, err
			return res
		}
		res.Chunks++
		res.Chars += len([]rune(text))

		if ctx.Err() != nil {
			res.Cancelled, res.Err = true, ctx.Err()
			return res
		}
		has = s.Next()
	}

	if err := s.Err(); err != nil {
		res.Err = err
		res.Cancelled = ctx.Err() != nil
		return res
	}

	if err := w.send(schema.StreamEvent{Type: schema.EventEnd}); err != nil {
		res.Cancelled, res.Err = true, err
		return res
	}
	res.Completed = true
	return res
}
