package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "kb-integration/pkg/errors"
)

// OK sends 200 JSON with data as the body.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends 201 JSON with data as the body.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error renders err. HTTPErrors keep their status, message and details; anything
// else becomes a generic 500 with no internal detail.
func Error(c *gin.Context, err error) {
	httpErr := pkgErrors.AsHTTPError(err)
	c.JSON(httpErr.Code, newErrorBody(httpErr.Message, httpErr.Details))
}

// BadRequest sends 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, newErrorBody(message, nil))
}

// InternalError sends 500 internal server error.
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, newErrorBody(DefaultErrorMessage, nil))
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, newErrorBody("Unauthorized", nil))
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, newErrorBody("Forbidden", nil))
}
