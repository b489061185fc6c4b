package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alumlink/alumlink-api/internal/server"
)

// Comment service specific errors
var (
	ErrCommentNotFound         = errors.New("comment not found")
	ErrTargetNotFound          = errors.New("commentable target not found")
	ErrInvalidTargetType       = errors.New("target type does not accept comments")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrMissingUserContext      = errors.New("missing user context")
	ErrInvalidUUID             = errors.New("invalid UUID format")
	ErrInvalidRequestBody      = errors.New("invalid request body")
	ErrDatabaseOperation       = errors.New("database operation failed")
)

// ValidationError reports a bad value in a single request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error codes
const (
	CodeCommentNotFound   = "COMMENT_NOT_FOUND"
	CodeTargetNotFound    = "TARGET_NOT_FOUND"
	CodeInvalidTargetType = "INVALID_TARGET_TYPE"
	CodePermissionDenied  = "PERMISSION_DENIED"
	CodeInvalidStatus     = "INVALID_STATUS_TRANSITION"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInternalError     = "INTERNAL_ERROR"
)

// HandleServiceError maps a service error to the failure envelope
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return server.FailField(c, http.StatusBadRequest, CodeValidationFailed, validationErr.Message, validationErr.Field)
	}

	switch {
	case errors.Is(err, ErrCommentNotFound):
		return server.Fail(c, http.StatusNotFound, CodeCommentNotFound, "Comment not found")
	case errors.Is(err, ErrTargetNotFound):
		return server.Fail(c, http.StatusNotFound, CodeTargetNotFound, "Target not found")
	case errors.Is(err, ErrInvalidTargetType):
		return server.Fail(c, http.StatusBadRequest, CodeInvalidTargetType, "Target type does not accept comments")
	case errors.Is(err, ErrPermissionDenied):
		return server.Fail(c, http.StatusForbidden, CodePermissionDenied, "Permission denied")
	case errors.Is(err, ErrInvalidStatusTransition):
		return server.Fail(c, http.StatusBadRequest, CodeInvalidStatus, "Invalid status transition")
	case errors.Is(err, ErrMissingUserContext):
		return server.Fail(c, http.StatusUnauthorized, CodeUnauthorized, "Authentication required")
	case errors.Is(err, ErrInvalidUUID):
		return server.Fail(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid identifier format")
	case errors.Is(err, ErrInvalidRequestBody):
		return server.Fail(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
	default:
		return server.Fail(c, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
	}
}
