package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxRequestBody caps the request body so oversized uploads fail early
// instead of filling the disk. Reads past the limit make the multipart
// parser fail, which the handlers report as invalid input.
func MaxRequestBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
