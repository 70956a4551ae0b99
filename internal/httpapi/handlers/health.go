package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/interview-lens/internal/schema"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, schema.Health{Status: "ok", Timestamp: time.Now().UTC()})
}
