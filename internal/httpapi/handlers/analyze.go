package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/interview-lens/internal/common"
	"github.com/suPer8Hu/interview-lens/internal/exchange"
	"github.com/suPer8Hu/interview-lens/internal/prompt"
	"github.com/suPer8Hu/interview-lens/internal/schema"
)

// Analyze streams a structured review of an interview transcript.
func (h *Handler) Analyze(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	req, err := schema.DecodeAnalyzeRequest(body)
	if err != nil {
		badRequest(c, err)
		return
	}

	msgs, err := prompt.Compose(prompt.ModeAnalyze, req.Transcript)
	if err != nil {
		h.log(c).WithError(err).Error("compose analyze prompt")
		common.Fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	h.serveStream(c, &exchange.Exchange{
		Mode:       string(prompt.ModeAnalyze),
		InputChars: len([]rune(req.Transcript)),
	}, msgs)
}
