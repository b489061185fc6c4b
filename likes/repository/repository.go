package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/likes/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// Insert adds a like. It returns false when the user had already liked
	// the target, without error.
	Insert(ctx context.Context, like *models.Like) (bool, error)

	// Delete removes a user's like from a target. It returns false when no
	// like existed.
	Delete(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetID uuid.UUID) (bool, error)

	// Exists reports whether the user has liked the target
	Exists(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetID uuid.UUID) (bool, error)

	// CountByTarget counts the likes on a target
	CountByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error)

	// FindLikedByUser returns, for a batch of same-kind targets, the subset
	// the user has liked
	FindLikedByUser(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}
