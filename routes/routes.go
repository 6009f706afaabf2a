package routes

import (
	"net/http"
	"time"

	"farewise/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, chat *handlers.ChatHandler) {
	api := r.Group("/api/chat")
	{
		api.POST("", chat.HandleChat)
		api.GET("/session/:id", chat.GetSessionHandler)
		api.DELETE("/session/:id", chat.ResetSessionHandler)
	}
}

// RegisterSearchRoutes registers the direct search endpoint.
func RegisterSearchRoutes(r *gin.Engine, searchHandler *handlers.SearchHandler) {
	api := r.Group("/api/search")
	{
		api.POST("", searchHandler.HandleSearch)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Farewise"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, chat *handlers.ChatHandler, searchHandler *handlers.SearchHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterChatRoutes(r, chat)
	RegisterSearchRoutes(r, searchHandler)
}
