package http

import (
	"errors"
	"net/http"

	"kb-integration/internal/proposal"
	pkgErrors "kb-integration/pkg/errors"
)

var (
	errInvalidBody   = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	errInvalidLimit  = pkgErrors.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	errInvalidStatus = pkgErrors.NewHTTPError(http.StatusBadRequest, "status must be one of pending, accepted, rejected, superseded, all")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	var (
		vErr     *proposal.ValidationError
		qErr     *proposal.QualityError
		conflict *proposal.ConflictError
	)
	switch {
	case errors.As(err, &vErr):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid proposal").
			WithDetails(map[string]any{"fields": vErr.Problems})
	case errors.As(err, &qErr):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Content did not pass quality checks").
			WithDetails(map[string]any{"issues": qErr.Issues, "score": qErr.Score})
	case errors.As(err, &conflict):
		msg := "Document has been updated"
		if conflict.PendingClaim {
			msg = "Another proposal is already pending for this document version"
		}
		return pkgErrors.NewHTTPError(http.StatusConflict, msg).
			WithDetails(map[string]any{"currentVersion": conflict.CurrentVersion, "yourVersion": conflict.YourVersion})
	case errors.Is(err, proposal.ErrDocumentNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "Document not found")
	case errors.Is(err, proposal.ErrUnauthenticated):
		return pkgErrors.ErrUnauthorized
	case errors.Is(err, proposal.ErrInvalidStatus):
		return errInvalidStatus
	default:
		return pkgErrors.ErrInternalServerError
	}
}
