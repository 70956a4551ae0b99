package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/interview-lens/internal/schema"
)

func NewAPIError(status int, msg string) schema.ApiError {
	return schema.ApiError{
		Error:      http.StatusText(status),
		Message:    msg,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	}
}

// Fail aborts the request with an ApiError payload.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, NewAPIError(status, msg))
}
