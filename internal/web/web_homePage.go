package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// homePage renders the index template for "/".
// Query, headers and body of the request are ignored.
func (s *WebServer) homePage(c *gin.Context) {
	body, err := s.Renderer.Render(s.WebConfig.IndexTemplate)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", htmlContentType)
		c.Header("Content-Length", strconv.Itoa(len(body)))
		c.Status(http.StatusOK)
		return
	}
	c.Data(http.StatusOK, htmlContentType, body)
}
