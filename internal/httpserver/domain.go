package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"kb-integration/internal/middleware"
	proposalHTTP "kb-integration/internal/proposal/delivery/http"
	proposalRepo "kb-integration/internal/proposal/repository/postgre"
	proposalUC "kb-integration/internal/proposal/usecase"
	"kb-integration/internal/prsync"
	prsyncRepo "kb-integration/internal/prsync/repository/postgre"
	"kb-integration/internal/quality"
	"kb-integration/internal/repoconfig"
	repoconfigHTTP "kb-integration/internal/repoconfig/delivery/http"
	repoconfigRepo "kb-integration/internal/repoconfig/repository/postgre"
	repoconfigUC "kb-integration/internal/repoconfig/usecase"
	"kb-integration/internal/webhook"
	webhookRepo "kb-integration/internal/webhook/repository/postgre"
)

// setupRepoConfigDomain mounts /api/admin/repo-configs and returns the use case
// shared with the PR processor.
func (srv *HTTPServer) setupRepoConfigDomain(ctx context.Context, admin *gin.RouterGroup, mw middleware.Middleware) repoconfig.UseCase {
	repo := repoconfigRepo.New(srv.db, srv.adminDB, srv.l)
	uc := repoconfigUC.New(repo, srv.encrypter, srv.l)
	h := repoconfigHTTP.New(srv.l, uc)
	repoconfigHTTP.RegisterRoutes(admin, h, mw)

	srv.l.Infof(ctx, "Repository config domain registered")
	return uc
}

// setupWebhookDomain wires the PR processor behind the GitHub intake.
func (srv *HTTPServer) setupWebhookDomain(ctx context.Context, api *gin.RouterGroup, configs repoconfig.UseCase) error {
	processor := prsync.New(configs, srv.fileLister, prsyncRepo.New(srv.db, srv.l), srv.prsyncCfg, srv.l)

	h := webhook.NewHandler(srv.webhookCfg, webhookRepo.New(srv.db, srv.l), processor, srv.limiter, srv.l)
	api.POST("/webhooks/github", h.HandleGitHubWebhook)
	api.GET("/webhooks/github", h.HandleGitHubPing)
	srv.webhookHandler = h

	if srv.webhookCfg.Secret == "" {
		srv.l.Warnf(ctx, "Webhook secret is not configured, signatures will not be verified")
	}
	srv.l.Infof(ctx, "GitHub webhook registered at POST /api/webhooks/github")
	return nil
}

func (srv *HTTPServer) setupProposalDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	gate := quality.New(srv.qualityCfg, srv.scorer, srv.l)
	uc := proposalUC.New(proposalRepo.New(srv.db, srv.l), gate, srv.l)
	h := proposalHTTP.New(srv.l, uc)
	proposalHTTP.RegisterRoutes(api, h, mw, srv.limiter)

	if srv.scorer == nil {
		srv.l.Infof(ctx, "Similarity provider disabled, near-duplicate check skipped")
	}
	srv.l.Infof(ctx, "Proposal domain registered")
	return nil
}
