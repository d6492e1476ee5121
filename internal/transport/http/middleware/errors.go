package middleware

import "github.com/gin-gonic/gin"

// abort renders the service error contract.
func abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": gin.H{"code": code, "message": msg}})
}
