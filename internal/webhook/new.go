package webhook

import (
	"kb-integration/internal/ratelimit"
	"kb-integration/internal/webhook/repository"
	pkgLog "kb-integration/pkg/log"
)

// Handler is the GitHub webhook intake. It owns the delivery audit log and the
// dispatcher that feeds the PR processor.
type Handler struct {
	cfg        Config
	verifier   *SignatureVerifier
	repo       repository.Repository
	limiter    ratelimit.Limiter
	dispatcher *Dispatcher
	l          pkgLog.Logger
}

func NewHandler(
	cfg Config,
	repo repository.Repository,
	processor Processor,
	limiter ratelimit.Limiter,
	l pkgLog.Logger,
) *Handler {
	h := &Handler{
		cfg:      cfg,
		verifier: NewSignatureVerifier(cfg.Secret, l),
		repo:     repo,
		limiter:  limiter,
		l:        l,
	}
	h.dispatcher = NewDispatcher(processor, cfg.Workers, cfg.QueueSize, h.onResult, l)
	return h
}

// Dispatcher exposes the worker pool for start-up and shutdown.
func (h *Handler) Dispatcher() *Dispatcher {
	return h.dispatcher
}
