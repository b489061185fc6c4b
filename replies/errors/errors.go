package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alumlink/alumlink-api/internal/server"
)

// Reply service specific errors
var (
	ErrReplyNotFound           = errors.New("reply not found")
	ErrCommentNotFound         = errors.New("comment not found")
	ErrParentReplyNotFound     = errors.New("parent reply not found")
	ErrDepthLimitExceeded      = errors.New("reply depth limit exceeded")
	ErrAmbiguousParent         = errors.New("exactly one of comment or parent reply must be given")
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
	CodeReplyNotFound     = "REPLY_NOT_FOUND"
	CodeCommentNotFound   = "COMMENT_NOT_FOUND"
	CodeParentNotFound    = "PARENT_REPLY_NOT_FOUND"
	CodeDepthLimit        = "DEPTH_LIMIT_EXCEEDED"
	CodeAmbiguousParent   = "AMBIGUOUS_PARENT"
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
	case errors.Is(err, ErrReplyNotFound):
		return server.Fail(c, http.StatusNotFound, CodeReplyNotFound, "Reply not found")
	case errors.Is(err, ErrCommentNotFound):
		return server.Fail(c, http.StatusNotFound, CodeCommentNotFound, "Comment not found")
	case errors.Is(err, ErrParentReplyNotFound):
		return server.Fail(c, http.StatusNotFound, CodeParentNotFound, "Parent reply not found")
	case errors.Is(err, ErrDepthLimitExceeded):
		return server.Fail(c, http.StatusBadRequest, CodeDepthLimit, "Maximum reply nesting depth reached")
	case errors.Is(err, ErrAmbiguousParent):
		return server.Fail(c, http.StatusBadRequest, CodeAmbiguousParent, "Exactly one of commentId or parentReplyId must be provided")
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
