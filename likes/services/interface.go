package services

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/internal/types"
	"github.com/alumlink/alumlink-api/likes/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// LikeService defines the business operations on likes
type LikeService interface {
	// ToggleLike flips the calling user's like on a target and reports
	// which way it went
	ToggleLike(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, user *types.UserContext) (*models.ToggleLikeResponse, error)

	// GetLikeStatus returns the target's like count and whether the calling
	// user (nil for anonymous readers) has liked it
	GetLikeStatus(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, user *types.UserContext) (*models.LikeStatusResponse, error)
}
