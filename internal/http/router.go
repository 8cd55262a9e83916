// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/http/handlers"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/service"
)

func NewRouter(advisor *service.TripAdvisor, resolver handlers.GeoResolver) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	chatHandler := handlers.NewChatHandler(advisor)
	r.POST("/api/chat", chatHandler.Turn)

	locationHandler := handlers.NewLocationHandler(advisor, resolver)
	r.POST("/api/recommendations/location", locationHandler.Recommend)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
