package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VighneshDev1411/mockllm/internal/completion"
	"github.com/VighneshDev1411/mockllm/internal/metrics"
	"github.com/VighneshDev1411/mockllm/pkg/utils"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Service   *completion.Service
	Collector *metrics.Collector
	Logger    *utils.Logger
	Version   string
	// Release switches gin to release mode
	Release bool
}

// Router manages all API routes
type Router struct {
	engine      *gin.Engine
	completions *CompletionHandlers
	tokenize    *TokenizeHandlers
	collector   *metrics.Collector
	logger      *utils.Logger
	version     string
	startTime   time.Time
}

// NewRouter creates a new API router
func NewRouter(deps Dependencies) *Router {
	if deps.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Logger == nil {
		deps.Logger = utils.Default()
	}
	if deps.Collector == nil {
		deps.Collector = metrics.NewCollector(metrics.DefaultConfig())
	}
	if deps.Service == nil {
		deps.Service = completion.NewService()
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(CORSMiddleware())
	engine.Use(LoggerMiddleware(deps.Logger))

	router := &Router{
		engine:      engine,
		completions: NewCompletionHandlers(deps.Service, deps.Collector, deps.Logger),
		tokenize:    NewTokenizeHandlers(deps.Logger),
		collector:   deps.Collector,
		logger:      deps.Logger,
		version:     deps.Version,
		startTime:   time.Now(),
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.HealthCheck)
	r.engine.GET("/metrics", r.GetMetrics)
	r.engine.DELETE("/metrics", r.ResetMetrics)
	r.engine.POST("/tokenize", r.tokenize.Tokenize)

	v1 := r.engine.Group("/v1")
	{
		v1.POST("/completions", r.completions.CreateCompletion)
		v1.GET("/completions/schema", r.completions.GetSchema)
		v1.GET("/models", r.ListModels)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": gin.H{
			"message": "Unknown endpoint " + c.Request.Method + " " + c.Request.URL.Path,
			"type":    "invalid_request_error",
			"param":   nil,
			"code":    nil,
		}})
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// LoggerMiddleware logs HTTP requests
func LoggerMiddleware(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.LogRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
