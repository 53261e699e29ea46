// Package api wires the HTTP surface: routes, their public markers, the
// middleware stack, and the login handler.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quotes/internal/auth"
	"github.com/skillsenselab/quotes/internal/logger"
	"github.com/skillsenselab/quotes/internal/quote"
	"github.com/skillsenselab/quotes/internal/server"
	"github.com/skillsenselab/quotes/internal/server/access"
	"github.com/skillsenselab/quotes/internal/server/middleware"
)

// Deps carries everything the router needs.
type Deps struct {
	ServerConfig server.Config
	Auth         *auth.Service
	Tokens       auth.TokenStrategy
	Quotes       *quote.Service
	Log          *logger.Logger
}

// NewRouter builds the Gin engine with the full middleware stack and all
// routes registered. The access gate covers every route; public markers are
// declared here, next to the routes they apply to, and nowhere else.
func NewRouter(deps Deps) *gin.Engine {
	deps.ServerConfig.ApplyDefaults()

	engine := gin.New()
	registry := access.NewRegistry()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(deps.ServerConfig.CORS))
	engine.Use(middleware.RequestLogger(deps.Log))
	engine.Use(middleware.AccessGate(registry, deps.Tokens, deps.Log))

	// Liveness.
	engine.GET("/health", healthHandler)
	registry.SetRoute("GET", "/health", true)

	// Login is public for the bearer gate but applies its own credential
	// check; two distinct gates by design.
	authHandler := NewAuthHandler(deps.Auth, deps.Log)
	engine.POST("/api/auth/login", authHandler.Login)
	registry.SetRoute("POST", "/api/auth/login", true)

	// Quotes: reads are public, writes require a bearer token. The group
	// default is protected; the read routes opt out individually.
	quotesHandler := quote.NewHandler(deps.Quotes)
	quotes := engine.Group("/api/quotes")
	registry.SetGroup("/api/quotes", false)
	{
		quotes.GET("", quotesHandler.List)
		registry.SetRoute("GET", "/api/quotes", true)

		quotes.GET("/:id", quotesHandler.Get)
		registry.SetRoute("GET", "/api/quotes/:id", true)

		quotes.POST("", quotesHandler.Create)
		quotes.PUT("/:id", quotesHandler.Update)
		quotes.DELETE("/:id", quotesHandler.Delete)
	}

	return engine
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
