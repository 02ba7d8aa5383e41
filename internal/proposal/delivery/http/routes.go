package http

import (
	"github.com/gin-gonic/gin"

	"kb-integration/internal/middleware"
	"kb-integration/internal/ratelimit"
)

// RegisterRoutes maps the proposal endpoints. Submission needs a signed-in
// author and is throttled per author; the listing is public.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware, limiter ratelimit.Limiter) {
	proposals := rg.Group("/proposals")
	{
		proposals.GET("", h.List)
		proposals.POST("", mw.Auth(), limiter.Middleware(ratelimit.CategoryProposalCreate), h.Create)
	}
}
