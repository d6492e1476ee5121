// Package middleware holds the gin middleware shared by the HTTP server.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
)

const (
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID is the gin context key of the request id.
	ContextRequestID = "request_id"
)

// RequestID keeps a client supplied X-Request-ID or generates one, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = xid.New().String()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
