package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/suPer8Hu/interview-lens/internal/common"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithFields(logrus.Fields{
					"request_id": GetRequestID(c),
					"path":       c.Request.URL.Path,
					"panic":      rec,
				}).Error(string(debug.Stack()))

				// a stream that already sent headers can only be cut off
				if c.Writer.Written() {
					c.Abort()
					return
				}
				common.Fail(c, http.StatusInternalServerError, "internal server error")
			}
		}()
		c.Next()
	}
}
