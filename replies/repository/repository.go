package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/replies/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// ReplyRepository defines the interface for reply data operations
type ReplyRepository interface {
	// Create persists a new reply
	Create(ctx context.Context, reply *models.Reply) error

	// FindByID retrieves a reply by its id regardless of status
	FindByID(ctx context.Context, replyID uuid.UUID) (*models.Reply, error)

	// FindVisibleByComment retrieves the direct replies of a comment that
	// render in the tree, oldest first. Non-active replies with active
	// descendants are included so the thread beneath them stays reachable.
	FindVisibleByComment(ctx context.Context, commentID uuid.UUID) ([]models.Reply, error)

	// FindVisibleByParent retrieves the children of a reply that render in
	// the tree, oldest first, under the same visibility rule
	FindVisibleByParent(ctx context.Context, parentReplyID uuid.UUID) ([]models.Reply, error)

	// CountActiveDirect counts active direct replies of a comment
	CountActiveDirect(ctx context.Context, commentID uuid.UUID) (int64, error)

	// CountActiveNested counts active children of a reply
	CountActiveNested(ctx context.Context, parentReplyID uuid.UUID) (int64, error)

	// CountActiveByTarget counts active replies across every thread rooted
	// in an active comment on the target
	CountActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error)

	// UpdateText replaces the text of a reply and bumps its timestamps
	UpdateText(ctx context.Context, replyID uuid.UUID, text string) error

	// UpdateStatus moves a reply to a new status
	UpdateStatus(ctx context.Context, replyID uuid.UUID, status models.Status) error

	// SetLikeCount overwrites the denormalized like counter
	SetLikeCount(ctx context.Context, replyID uuid.UUID, count int64) error

	// SetReplyCount overwrites the denormalized nested reply counter
	SetReplyCount(ctx context.Context, replyID uuid.UUID, count int64) error
}
