package http

import (
	"kb-integration/internal/proposal"
	"kb-integration/pkg/log"
)

type handler struct {
	l  log.Logger
	uc proposal.UseCase
}

// New creates a new HTTP handler for the proposal endpoints.
func New(l log.Logger, uc proposal.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
