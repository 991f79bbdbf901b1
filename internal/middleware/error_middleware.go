package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Validation errors
// keep their message list; storage failures are logged and answered with a
// generic 500 so backend details never reach clients.
func HandleAPIError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: validationErr.Messages})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrCollegeNotFound),
		errors.Is(err, apperrors.ErrProgramNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid username or password"})

	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrSessionInvalid),
		errors.Is(err, apperrors.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required"})

	// Duplicate keys normally surface as validation errors; these sentinels
	// only reach here when a concurrent write slips past the pre-check.
	case errors.Is(err, apperrors.ErrCollegeAlreadyExists),
		errors.Is(err, apperrors.ErrProgramAlreadyExists),
		errors.Is(err, apperrors.ErrStudentAlreadyExists),
		errors.Is(err, apperrors.ErrUsernameExists),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, apperrors.ErrReferentialIntegrity):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	// The message names the rolled-back transaction; no partial cascade
	// was committed.
	case errors.Is(err, apperrors.ErrCascadeFailed):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Cascading update failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, apperrors.ErrFileTooLarge),
		errors.Is(err, apperrors.ErrInvalidFileType),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, apperrors.ErrStorage):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Storage failure")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An unexpected error occurred"})

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An unexpected error occurred"})
	}
}
