package ratelimit

import "github.com/gin-gonic/gin"

// Limiter bounds how often an actor may perform an action category.
type Limiter interface {
	// Check counts one attempt by the actor behind c. The attempt is consumed
	// only when it is allowed.
	Check(c *gin.Context, category string) Result
	// Middleware rejects over-limit requests before they reach the handler.
	Middleware(category string) gin.HandlerFunc
}
