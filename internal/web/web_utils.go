package web

import (
	"log"

	"github.com/gin-gonic/gin"
)

// renderError logs the failure and aborts with statusCode.
// No body is written; clients only see the status.
func (s *WebServer) renderError(c *gin.Context, statusCode int, err error) {
	log.Printf("[WEB]: %s %s failed with %d: %v", c.Request.Method, c.Request.URL.Path, statusCode, err)
	c.AbortWithStatus(statusCode)
}
