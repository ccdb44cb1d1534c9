package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ashmarov/ticketgate/internal/server/http/handlers"
	"github.com/ashmarov/ticketgate/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.TicketingFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	statusHandler := handlers.NewStatusHandler(facade)
	authHandler := handlers.NewAuthHandler(facade)
	ticketHandler := handlers.NewTicketHandler(facade)

	engine.GET("/", statusHandler.Root)

	api := engine.Group("/api")
	api.GET("/health", statusHandler.Health)
	api.POST("/auth/login", authHandler.Login)

	tickets := api.Group("/tickets")
	tickets.Use(middleware.AuthRequired(facade))
	tickets.POST("", ticketHandler.Issue)
	tickets.GET("", ticketHandler.List)
	tickets.POST("/verify", ticketHandler.Verify)
	tickets.POST("/scan", ticketHandler.Scan)

	return engine
}
