package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kb-integration/internal/middleware"
	"kb-integration/internal/model"
	"kb-integration/internal/ratelimit"
	"kb-integration/pkg/response"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		response.InternalError(c)
		c.Abort()
	}))
	if srv.mode == gin.DebugMode {
		srv.gin.Use(gin.Logger())
	}

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Environment: production")
	} else {
		srv.l.Infof(ctx, "Environment: %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api.
func (srv *HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api")
	mw := middleware.New(srv.l, srv.jwtManager, srv.adminUserIDs)
	srv.limiter = ratelimit.New(srv.rateLimitCfg, srv.l)

	configs := srv.setupRepoConfigDomain(ctx, api.Group("/admin"), mw)

	if err := srv.setupWebhookDomain(ctx, api, configs); err != nil {
		return err
	}
	if err := srv.setupProposalDomain(ctx, api, mw); err != nil {
		return err
	}

	return nil
}
