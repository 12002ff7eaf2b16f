// Package web provides the HTTP server and web interface for go-supplydemand
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-supplydemand/internal/config"
)

// WebServer represents the web server
type WebServer struct {
	Router    *gin.Engine
	Config    config.ServerConfig
	WebConfig *config.WebConfig
	Renderer  TemplateRenderer

	httpServer *http.Server
}

// trustedProxies are honoured for X-Forwarded-* headers in hosted mode
var trustedProxies = []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}

// NewServer creates a new web server instance.
// A nil webconfig selects the defaults, a nil renderer reads templates from webconfig.TemplateDir.
func NewServer(cfg config.ServerConfig, webconfig *config.WebConfig, renderer TemplateRenderer) *WebServer {
	if webconfig == nil {
		webconfig = config.DefaultWebConfig()
	}
	if renderer == nil {
		renderer = NewFileRenderer(webconfig.TemplateDir)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Answer 405 instead of 404 when the path exists for another method
	router.HandleMethodNotAllowed = true

	if cfg.Hosted {
		// Platform routers sit in front of us
		if err := router.SetTrustedProxies(trustedProxies); err != nil {
			log.Printf("[WEB]: Warning: Failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("[WEB]: Warning: Failed to clear trusted proxies: %v", err)
		}
	}

	router.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	server := &WebServer{
		Router:    router,
		Config:    cfg,
		WebConfig: webconfig,
		Renderer:  renderer,
	}
	router.Use(server.ApacheLogFormat())

	server.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	static := s.staticHandler()
	s.Router.GET("/static/*filepath", static)
	s.Router.HEAD("/static/*filepath", static)

	s.Router.GET("/", s.homePage)
	s.Router.HEAD("/", s.homePage)
}

// Handler returns the http.Handler serving all routes
func (s *WebServer) Handler() http.Handler {
	return s.Router
}

// Start binds the configured address and serves until Shutdown is called
// or the listener fails. After Shutdown it returns http.ErrServerClosed.
func (s *WebServer) Start() error {
	log.Printf("[WEB]: Starting HTTP server on %s (mode: %s, debug: %t)", s.httpServer.Addr, s.Config.Mode(), s.Config.Debug)
	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *WebServer) Shutdown(ctx context.Context) error {
	log.Printf("[WEB]: Shutting down HTTP server on %s", s.httpServer.Addr)
	return s.httpServer.Shutdown(ctx)
}

// ApacheLogFormat logs requests in Apache combined log format
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
