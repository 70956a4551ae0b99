package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/suPer8Hu/interview-lens/internal/ai"
	"github.com/suPer8Hu/interview-lens/internal/common"
	"github.com/suPer8Hu/interview-lens/internal/exchange"
	"github.com/suPer8Hu/interview-lens/internal/httpapi/middleware"
	"github.com/suPer8Hu/interview-lens/internal/schema"
)

// MaxBodyBytes caps request bodies; transcripts are the largest payload.
const MaxBodyBytes = 2 << 20

// Gateway is what the handlers need from *ai.Gateway.
type Gateway interface {
	Run(ctx context.Context, messages []ai.Message) (string, error)
	Stream(ctx context.Context, messages []ai.Message) (*ai.Stream, error)
	ProviderName() string
}

type Handler struct {
	Gateway Gateway
	// Exchanges is nil when the exchange log is disabled.
	Exchanges *exchange.Recorder
}

func NewHandler(gw Gateway, rec *exchange.Recorder) *Handler {
	return &Handler{Gateway: gw, Exchanges: rec}
}

func (h *Handler) log(c *gin.Context) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
		"provider":   h.Gateway.ProviderName(),
	})
}

func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			common.Fail(c, http.StatusRequestEntityTooLarge, "request body is too large")
			return nil, false
		}
		common.Fail(c, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	return b, true
}

// badRequest writes the validation message verbatim; anything else is reported generically.
func badRequest(c *gin.Context, err error) {
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		common.Fail(c, http.StatusBadRequest, ve.Message)
		return
	}
	common.Fail(c, http.StatusBadRequest, "invalid request")
}
