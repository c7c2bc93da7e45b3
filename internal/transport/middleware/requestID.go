package middleware

import (
	"github.com/ds124wfegd/mineru-extract/internal/pkg/reqid"
	"github.com/gin-gonic/gin"
)

// RequestID keeps an incoming X-Request-Id or generates one, echoes it in the
// response and stores it on the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(reqid.Header)
		if id == "" {
			id = reqid.New()
		}
		c.Header(reqid.Header, id)
		c.Request = c.Request.WithContext(reqid.WithID(c.Request.Context(), id))
		c.Next()
	}
}
