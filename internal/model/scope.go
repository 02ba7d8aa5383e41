package model

import "context"

// Role values carried in access tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Scope is the verified caller identity attached to a request.
type Scope struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the scope carries the admin role.
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Environment names the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

type scopeCtxKey struct{}

// SetScopeToContext attaches the verified caller identity to ctx.
func SetScopeToContext(ctx context.Context, sc Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, sc)
}

// GetScopeFromContext returns the identity set by SetScopeToContext.
func GetScopeFromContext(ctx context.Context) (Scope, bool) {
	sc, ok := ctx.Value(scopeCtxKey{}).(Scope)
	return sc, ok && sc.UserID != ""
}
