package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// processListReq reads the optional enabled_only filter.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if raw := c.Query("enabled_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return req, errInvalidEnabledOnly
		}
		req.EnabledOnly = v
	}
	return req, nil
}

// processUpsertReq binds and validates the upsert request body.
func (h *handler) processUpsertReq(c *gin.Context) (upsertReq, error) {
	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "repoconfig.processUpsertReq: %v", err)
		return req, errInvalidBody
	}
	if err := req.validate(); err != nil {
		return req, h.mapError(err)
	}
	return req, nil
}
