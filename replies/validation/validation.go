package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/alumlink/alumlink-api/replies/errors"
	"github.com/alumlink/alumlink-api/replies/models"
)

// MaxTextLength is the maximum reply length in characters. Replies are
// shorter than comments on purpose.
const MaxTextLength = 500

// NormalizeText trims surrounding whitespace from reply text
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// ValidateText checks normalized reply text
func ValidateText(text string) *apperrors.ValidationError {
	if text == "" {
		return apperrors.NewValidationError("text", "text cannot be empty or whitespace only")
	}

	if utf8.RuneCountInString(text) > MaxTextLength {
		return apperrors.NewValidationError("text", "text must be at most 500 characters")
	}

	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return apperrors.NewValidationError("text", "text contains invalid control characters")
		}
	}

	return nil
}

// ValidateCreateReplyRequest validates the create reply request. Exactly one
// of commentId or parentReplyId must be set.
func ValidateCreateReplyRequest(req *models.CreateReplyRequest) error {
	if req == nil {
		return apperrors.NewValidationError("body", "request body is required")
	}

	if (req.CommentId == nil) == (req.ParentReplyId == nil) {
		return apperrors.ErrAmbiguousParent
	}

	if err := ValidateText(NormalizeText(req.Text)); err != nil {
		return err
	}

	return nil
}

// ValidateUpdateReplyRequest validates the update reply request
func ValidateUpdateReplyRequest(req *models.UpdateReplyRequest) error {
	if req == nil {
		return apperrors.NewValidationError("body", "request body is required")
	}

	if req.Text == nil && req.Status == nil {
		return apperrors.NewValidationError("body", "at least one of text or status is required")
	}

	if req.Text != nil {
		if err := ValidateText(NormalizeText(*req.Text)); err != nil {
			return err
		}
	}

	if req.Status != nil && !req.Status.IsValid() {
		return apperrors.NewValidationError("status", "status must be one of: active, hidden, deleted")
	}

	return nil
}
