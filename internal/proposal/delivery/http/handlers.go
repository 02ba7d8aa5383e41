package http

import (
	"github.com/gin-gonic/gin"

	"kb-integration/internal/model"
	"kb-integration/pkg/response"
)

// Create godoc
// @Summary     Submit a proposal
// @Description Validates the body, runs the quality gate and checks baseDocVersion against the target document before storing a pending proposal.
// @Tags        Proposals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body createReq true "Proposal"
// @Success     201 {object} proposalResp
// @Failure     400 {object} response.ErrorBody "Invalid proposal or quality rejection"
// @Failure     401 {object} response.ErrorBody "Unauthorized"
// @Failure     404 {object} response.ErrorBody "Document not found"
// @Failure     409 {object} response.ErrorBody "Document has been updated"
// @Failure     429 {object} response.ErrorBody "Too many requests"
// @Failure     500 {object} response.ErrorBody "Internal server error"
// @Router      /api/proposals [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	sc, _ := model.GetScopeFromContext(ctx)
	p, err := h.uc.Create(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, newProposalResp(p))
}

// List godoc
// @Summary     List proposals
// @Description Newest first. status defaults to pending; pass all to disable the filter.
// @Tags        Proposals
// @Produce     json
// @Param       status      query string false "pending, accepted, rejected, superseded or all"
// @Param       limit       query int    false "1-100, default 10"
// @Param       authorId    query string false "Author filter"
// @Param       targetDocId query string false "Document filter"
// @Success     200 {array}  listItemResp
// @Failure     400 {object} response.ErrorBody "Invalid filter"
// @Failure     500 {object} response.ErrorBody "Internal server error"
// @Router      /api/proposals [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(items))
}
