// Package server exposes the automation session and the content pipeline
// over HTTP. One route per action; action routes feed the dispatcher,
// content routes bypass it entirely.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/entrhq/pagedriver/pkg/browser"
	"github.com/entrhq/pagedriver/pkg/config"
	"github.com/entrhq/pagedriver/pkg/logging"
)

// Version is the service version reported by the health descriptor.
const Version = "1.0.0"

// Server wires the HTTP surface to the action dispatcher.
type Server struct {
	cfg        *config.Config
	dispatcher *browser.Dispatcher
	log        *logging.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds the server with its routes registered.
func New(cfg *config.Config, dispatcher *browser.Dispatcher, log *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-API-Key"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		log:        log,
		engine:     engine,
	}
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) registerRoutes() {
	// Health stays public even when the API-key gate is on.
	s.engine.GET("/", s.handleHealth)

	routes := s.engine.Group("/")
	if s.cfg.APIKey != "" {
		routes.Use(apiKeyAuth(s.cfg.APIKey))
	}

	routes.POST("/navigate", s.handleNavigate)
	routes.POST("/type", s.handleType)
	routes.POST("/click", s.handleClick)
	routes.POST("/fill-form", s.handleFillForm)
	routes.POST("/get-text", s.handleGetText)
	routes.POST("/screenshot", s.handleScreenshot)
	routes.POST("/wait-for-element", s.handleWaitForElement)
	routes.POST("/extract-data", s.handleExtractData)
	routes.POST("/download-media", s.handleDownloadMedia)
	routes.POST("/authenticate-platform", s.handleAuthenticatePlatform)
	routes.POST("/analyze-content", s.handleAnalyzeContent)
	routes.POST("/generate-variants", s.handleGenerateVariants)
	routes.POST("/template-processor", s.handleTemplateProcessor)
}

// handleHealth reports the service descriptor. No side effects, no auth.
func (s *Server) handleHealth(c *gin.Context) {
	auth := "none"
	if s.cfg.APIKey != "" {
		auth = "API key required"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ready",
		"service":        "pagedriver",
		"version":        Version,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"authentication": auth,
		"endpoints": []string{
			"POST /navigate - Navigate to URL",
			"POST /type - Type text into element",
			"POST /click - Click element",
			"POST /fill-form - Fill multiple form fields",
			"POST /get-text - Extract text from elements",
			"POST /screenshot - Take screenshot",
			"POST /wait-for-element - Wait for element to appear",
			"POST /extract-data - Extract structured data from pages",
			"POST /download-media - Download files from URLs",
			"POST /authenticate-platform - Open platform login page",
			"POST /analyze-content - Extract insights and patterns",
			"POST /generate-variants - Create platform-specific content",
			"POST /template-processor - Process templates with data",
		},
	})
}

// Start begins serving. Blocks until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.log.Infof("listening on %s", s.cfg.Addr())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
