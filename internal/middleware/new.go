package middleware

import (
	"kb-integration/pkg/log"
	"kb-integration/pkg/scope"
)

type Middleware struct {
	l            log.Logger
	jwtManager   scope.Manager
	adminUserIDs map[string]struct{}
}

// New creates the shared middleware set. adminUserIDs are granted Admin()
// regardless of the role claim in their token.
func New(l log.Logger, jwtManager scope.Manager, adminUserIDs []string) Middleware {
	admins := make(map[string]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		if id != "" {
			admins[id] = struct{}{}
		}
	}
	return Middleware{
		l:            l,
		jwtManager:   jwtManager,
		adminUserIDs: admins,
	}
}
