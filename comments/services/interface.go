package services

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/comments/models"
	"github.com/alumlink/alumlink-api/internal/types"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// CommentService defines the business operations on comments
type CommentService interface {
	// CreateComment attaches a new comment to a commentable target
	CreateComment(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, req *models.CreateCommentRequest, user *types.UserContext) (*models.Comment, error)

	// GetComments lists active comments on a target with pagination and,
	// when requested, assembled reply trees. The user may be nil for
	// anonymous readers; isLiked annotations are then false.
	GetComments(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, filter *models.CommentQueryFilter, user *types.UserContext) (*models.CommentsListResponse, error)

	// GetComment fetches a single active comment
	GetComment(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)

	// UpdateComment edits a comment's text or moves its status
	UpdateComment(ctx context.Context, commentID uuid.UUID, req *models.UpdateCommentRequest, user *types.UserContext) (*models.Comment, error)

	// DeleteComment soft-deletes a comment. Its replies stay in place under
	// the tombstoned root.
	DeleteComment(ctx context.Context, commentID uuid.UUID, user *types.UserContext) error
}
