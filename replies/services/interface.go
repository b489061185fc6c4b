package services

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/internal/types"
	"github.com/alumlink/alumlink-api/replies/models"
)

// ReplyService defines the business operations on replies
type ReplyService interface {
	// CreateReply creates a direct or nested reply, depending on which
	// parent the request names
	CreateReply(ctx context.Context, req *models.CreateReplyRequest, user *types.UserContext) (*models.Reply, error)

	// UpdateReply edits a reply's text or moves its status
	UpdateReply(ctx context.Context, replyID uuid.UUID, req *models.UpdateReplyRequest, user *types.UserContext) (*models.Reply, error)

	// DeleteReply soft-deletes a reply. Its children keep their parent
	// pointer and stay visible beneath the tombstone.
	DeleteReply(ctx context.Context, replyID uuid.UUID, user *types.UserContext) error
}
