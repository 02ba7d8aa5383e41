package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// processCreateReq binds the proposal body. Field rules are checked by the use case.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "proposal.processCreateReq: %v", err)
		return req, errInvalidBody
	}
	return req, nil
}

func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	req := listReq{
		Status:      c.Query("status"),
		AuthorID:    c.Query("authorId"),
		TargetDocID: c.Query("targetDocId"),
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, errInvalidLimit
		}
		req.Limit = n
	}
	return req, nil
}
