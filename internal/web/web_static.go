package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// staticHandler serves files below WebConfig.StaticDir.
// Directories are never listed.
func (s *WebServer) staticHandler() gin.HandlerFunc {
	fileServer := http.StripPrefix("/static", http.FileServer(gin.Dir(s.WebConfig.StaticDir, false)))

	return func(c *gin.Context) {
		path := c.Param("filepath")
		if path == "" || strings.HasSuffix(path, "/") {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
