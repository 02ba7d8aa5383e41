package http

import (
	"github.com/gin-gonic/gin"

	"kb-integration/internal/repoconfig"
	"kb-integration/pkg/response"
)

// List godoc
// @Summary     List repository configs
// @Description Returns repository ingestion configs, disabled ones included unless enabled_only is set.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Param       enabled_only query bool false "Only enabled configs"
// @Success     200 {object} listResp
// @Failure     400 {object} response.ErrorBody "enabled_only must be a boolean"
// @Failure     401 {object} response.ErrorBody "Unauthorized"
// @Failure     403 {object} response.ErrorBody "Forbidden"
// @Failure     500 {object} response.ErrorBody "Internal server error"
// @Router      /api/admin/repo-configs [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	configs, err := h.uc.GetAll(ctx, repoconfig.ReadOptions{Elevated: true, EnabledOnly: req.EnabledOnly})
	if err != nil {
		h.l.Errorf(ctx, "uc.GetAll: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(configs))
}

// Upsert godoc
// @Summary     Create or update a repository config
// @Description Omitted source_patterns, targets and rules take the naming-convention default. Omitting github_token keeps the stored one.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body upsertReq true "Repository config"
// @Success     200 {object} upsertResp
// @Failure     400 {object} response.ErrorBody "repository_name is required"
// @Failure     401 {object} response.ErrorBody "Unauthorized"
// @Failure     403 {object} response.ErrorBody "Forbidden"
// @Failure     500 {object} response.ErrorBody "Internal server error"
// @Router      /api/admin/repo-configs [POST]
func (h *handler) Upsert(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpsertReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	config, err := h.uc.Upsert(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Upsert: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newUpsertResp(config))
}
