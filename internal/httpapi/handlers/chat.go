package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/interview-lens/internal/common"
	"github.com/suPer8Hu/interview-lens/internal/exchange"
	"github.com/suPer8Hu/interview-lens/internal/prompt"
	"github.com/suPer8Hu/interview-lens/internal/schema"
	"github.com/suPer8Hu/interview-lens/internal/transport"
)

func (h *Handler) bindChat(c *gin.Context) (schema.ChatRequest, bool) {
	body, ok := readBody(c)
	if !ok {
		return schema.ChatRequest{}, false
	}
	req, err := schema.DecodeChatRequest(body)
	if err != nil {
		badRequest(c, err)
		return schema.ChatRequest{}, false
	}
	return req, true
}

func (h *Handler) Chat(c *gin.Context) {
	req, ok := h.bindChat(c)
	if !ok {
		return
	}

	msgs, err := prompt.Compose(prompt.ModeChat, req.Message)
	if err != nil {
		h.log(c).WithError(err).Error("compose chat prompt")
		common.Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	messageID, err := common.NewMessageID()
	if err != nil {
		h.log(c).WithError(err).Error("new message id")
		common.Fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	ex := &exchange.Exchange{
		MessageID:      messageID,
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Endpoint:       c.FullPath(),
		Mode:           string(prompt.ModeChat),
		Provider:       h.Gateway.ProviderName(),
		InputChars:     len([]rune(req.Message)),
	}
	started := time.Now()

	text, err := h.Gateway.Run(c.Request.Context(), msgs)
	ex.DurationMs = time.Since(started).Milliseconds()
	if err != nil {
		h.log(c).WithField("message_id", messageID).WithError(err).Warn("chat failed")
		ex.Outcome = exchange.OutcomeFailed
		if c.Request.Context().Err() != nil {
			ex.Outcome = exchange.OutcomeCancelled
		}
		ex.HTTPStatus = http.StatusInternalServerError
		ex.Error = errText(err)
		h.Exchanges.Record(c.Request.Context(), ex)
		common.Fail(c, http.StatusInternalServerError, transport.UpstreamFailureMessage)
		return
	}

	resp, err := transport.ChatResponse(req, text, messageID)
	if err != nil {
		h.log(c).WithField("message_id", messageID).WithError(err).Error("build chat response")
		ex.Outcome = exchange.OutcomeFailed
		ex.HTTPStatus = http.StatusInternalServerError
		ex.Error = errText(err)
		h.Exchanges.Record(c.Request.Context(), ex)
		common.Fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	ex.ConversationID = resp.ConversationID
	ex.Outcome = exchange.OutcomeCompleted
	ex.HTTPStatus = http.StatusOK
	ex.OutputChars = len([]rune(text))
	ex.Chunks = 1
	h.Exchanges.Record(c.Request.Context(), ex)

	c.JSON(http.StatusOK, resp)
}

// ChatStream answers a chat message as an event stream.
func (h *Handler) ChatStream(c *gin.Context) {
	req, ok := h.bindChat(c)
	if !ok {
		return
	}
	msgs, err := prompt.Compose(prompt.ModeChat, req.Message)
	if err != nil {
		h.log(c).WithError(err).Error("compose chat prompt")
		common.Fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	h.serveStream(c, &exchange.Exchange{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Mode:           string(prompt.ModeChat),
		InputChars:     len([]rune(req.Message)),
	}, msgs)
}

func errText(err error) *string {
	s := err.Error()
	return &s
}
