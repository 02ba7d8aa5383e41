package http

import (
	"github.com/gin-gonic/gin"

	"kb-integration/internal/middleware"
)

// RegisterRoutes maps the admin config endpoints. Every route requires an admin.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	configs := rg.Group("/repo-configs", mw.Auth(), mw.Admin())
	{
		configs.GET("", h.List)
		configs.POST("", h.Upsert)
	}
}
