package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"kb-integration/internal/model"
	pkgErrors "kb-integration/pkg/errors"
	"kb-integration/pkg/response"
)

const scopeKey = "scope"

// Auth verifies the bearer token and stores the caller's model.Scope in both
// the gin context and the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Error(c, pkgErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(strings.TrimSpace(token))
		if err != nil {
			m.l.Warnf(ctx, "middleware.Auth: %v", err)
			response.Error(c, pkgErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		sc := model.Scope{UserID: payload.UserID, Role: payload.Role}
		if sc.Role == "" {
			sc.Role = model.RoleUser
		}
		c.Set(scopeKey, sc)
		c.Request = c.Request.WithContext(model.SetScopeToContext(ctx, sc))
		c.Next()
	}
}

// Admin requires Auth() to have run first.
func (m Middleware) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := GetScope(c)
		if !ok {
			response.Error(c, pkgErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, listed := m.adminUserIDs[sc.UserID]; !listed && !sc.IsAdmin() {
			m.l.Warnf(c.Request.Context(), "middleware.Admin: user %s denied", sc.UserID)
			response.Error(c, pkgErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetScope returns the identity set by Auth().
func GetScope(c *gin.Context) (model.Scope, bool) {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	return sc, ok
}
