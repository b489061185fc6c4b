package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/comments/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// Create persists a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment by its id regardless of status
	FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)

	// FindActiveByTarget retrieves a page of active comments on a target,
	// sorted by creation time in the given order
	FindActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, sort models.SortOrder, limit, offset int) ([]models.Comment, error)

	// CountActiveByTarget counts active comments on a target
	CountActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error)

	// UpdateText replaces the text of a comment and bumps its timestamps
	UpdateText(ctx context.Context, commentID uuid.UUID, text string) error

	// UpdateStatus moves a comment to a new status
	UpdateStatus(ctx context.Context, commentID uuid.UUID, status models.Status) error

	// SetLikeCount overwrites the denormalized like counter
	SetLikeCount(ctx context.Context, commentID uuid.UUID, count int64) error

	// SetReplyCount overwrites the denormalized reply counter
	SetReplyCount(ctx context.Context, commentID uuid.UUID, count int64) error
}
