package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/alumlink/alumlink-api/comments/errors"
	"github.com/alumlink/alumlink-api/comments/models"
)

// MaxTextLength is the maximum comment length in characters
const MaxTextLength = 1000

// NormalizeText trims surrounding whitespace from comment text. Validation
// and storage both operate on the normalized form.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// ValidateText checks normalized comment text
func ValidateText(text string) *apperrors.ValidationError {
	if text == "" {
		return apperrors.NewValidationError("text", "text cannot be empty or whitespace only")
	}

	if utf8.RuneCountInString(text) > MaxTextLength {
		return apperrors.NewValidationError("text", "text must be at most 1000 characters")
	}

	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return apperrors.NewValidationError("text", "text contains invalid control characters")
		}
	}

	return nil
}

// ValidateCreateCommentRequest validates the create comment request
func ValidateCreateCommentRequest(req *models.CreateCommentRequest) error {
	if req == nil {
		return apperrors.NewValidationError("body", "request body is required")
	}

	if err := ValidateText(NormalizeText(req.Text)); err != nil {
		return err
	}

	return nil
}

// ValidateUpdateCommentRequest validates the update comment request. At
// least one of text or status must be present.
func ValidateUpdateCommentRequest(req *models.UpdateCommentRequest) error {
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
