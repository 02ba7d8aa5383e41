package http

import (
	"errors"
	"net/http"

	"kb-integration/internal/repoconfig"
	pkgErrors "kb-integration/pkg/errors"
)

var (
	errInvalidBody        = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	errInvalidEnabledOnly = pkgErrors.NewHTTPError(http.StatusBadRequest, "enabled_only must be a boolean")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, repoconfig.ErrRepositoryNameRequired):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "repository_name is required")
	case errors.Is(err, repoconfig.ErrInvalidRepositoryName):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "repository_name must be owner/repo")
	case errors.Is(err, repoconfig.ErrConfigNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "Repository config not found")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
