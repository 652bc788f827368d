package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/objgate/server/internal/shared/errors"
)

// Error sends an error response with the given status code.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, apperrors.ErrorResponse{
		Error: apperrors.ErrorDetail{Code: code, Message: message},
	})
}

// BadRequest sends a 400 Bad Request response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.CodeBadRequest, message)
}

// AppError sends the response described by err.
func AppError(c *gin.Context, err *apperrors.AppError) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(err.StatusCode, err.ToResponse())
}

// ErrorMapping translates a module error into an AppError.
type ErrorMapping func(err error) *apperrors.AppError

// HandleError writes err using the first mapping that recognises it.
// Unrecognised errors become 500s without leaking their text.
func HandleError(c *gin.Context, err error, mappings ...ErrorMapping) {
	for _, m := range mappings {
		if appErr := m(err); appErr != nil {
			AppError(c, appErr)
			return
		}
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		AppError(c, appErr)
		return
	}

	AppError(c, apperrors.Internal("", err))
}
