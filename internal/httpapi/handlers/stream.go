package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/suPer8Hu/interview-lens/internal/ai"
	"github.com/suPer8Hu/interview-lens/internal/common"
	"github.com/suPer8Hu/interview-lens/internal/exchange"
	"github.com/suPer8Hu/interview-lens/internal/transport"
)

// serveStream opens a provider stream, relays it and records the outcome in ex.
func (h *Handler) serveStream(c *gin.Context, ex *exchange.Exchange, msgs []ai.Message) {
	messageID, err := common.NewMessageID()
	if err != nil {
		h.log(c).WithError(err).Error("new message id")
		common.Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	ex.MessageID = messageID
	ex.Endpoint = c.FullPath()
	ex.Provider = h.Gateway.ProviderName()
	ctx := c.Request.Context()
	started := time.Now()

	s, err := h.Gateway.Stream(ctx, msgs)
	if err != nil {
		h.log(c).WithField("message_id", messageID).WithError(err).Warn("open stream")
		ex.Outcome = exchange.OutcomeFailed
		ex.HTTPStatus = http.StatusInternalServerError
		ex.DurationMs = time.Since(started).Milliseconds()
		ex.Error = errText(err)
		h.Exchanges.Record(ctx, ex)
		common.Fail(c, http.StatusInternalServerError, transport.UpstreamFailureMessage)
		return
	}

	res := transport.Stream(c, s, messageID)

	ex.DurationMs = time.Since(started).Milliseconds()
	ex.HTTPStatus = res.Status
	ex.Chunks = res.Chunks
	ex.OutputChars = res.Chars
	switch {
	case res.Completed:
		ex.Outcome = exchange.OutcomeCompleted
	case res.Cancelled:
		ex.Outcome = exchange.OutcomeCancelled
	default:
		ex.Outcome = exchange.OutcomeFailed
	}
	if res.Err != nil {
		ex.Error = errText(res.Err)
		h.log(c).WithFields(logrus.Fields{
			"message_id": messageID,
			"started":    res.Started,
			"chunks":     res.Chunks,
			"outcome":    ex.Outcome,
		}).WithError(res.Err).Warn("stream ended early")
	}
	h.Exchanges.Record(ctx, ex)
}
