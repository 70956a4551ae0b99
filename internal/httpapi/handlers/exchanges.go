package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/interview-lens/internal/common"
	"github.com/suPer8Hu/interview-lens/internal/exchange"
)

// ListExchanges pages through the exchange log, newest first. Pass the returned nextBefore
// as ?before= to fetch the next page.
func (h *Handler) ListExchanges(c *gin.Context) {
	if h.Exchanges == nil {
		common.Fail(c, http.StatusServiceUnavailable, "exchange log is disabled")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	var before uint64
	if s := c.Query("before"); s != "" {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			before = n
		}
	}

	rows, err := h.Exchanges.List(c.Request.Context(), limit, before)
	if err != nil {
		h.log(c).WithError(err).Error("list exchanges")
		common.Fail(c, http.StatusInternalServerError, "failed to list exchanges")
		return
	}

	if rows == nil {
		rows = []exchange.Exchange{}
	}
	var nextBefore uint64
	if len(rows) > 0 {
		nextBefore = rows[len(rows)-1].ID
	}
	c.JSON(http.StatusOK, gin.H{
		"exchanges":  rows,
		"nextBefore": nextBefore,
	})
}
