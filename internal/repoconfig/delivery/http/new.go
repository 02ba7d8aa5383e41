package http

import (
	"kb-integration/internal/repoconfig"
	"kb-integration/pkg/log"
)

type handler struct {
	l  log.Logger
	uc repoconfig.UseCase
}

// New creates a new HTTP handler for the admin repository-config endpoints.
func New(l log.Logger, uc repoconfig.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
