package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Provider availability lives under the provider directory path.
	g.GET("/providers/:providerId/availability", authMiddleware, h.Availability)

	group := g.Group("/appointments")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/schedule", h.Schedule)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Cancel)
	}
}
