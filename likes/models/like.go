package models

import (
	uuid "github.com/gofrs/uuid"

	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// Like represents a single user's like on a likeable target. Uniqueness of
// (owner, type, id) is enforced by the database; unliking removes the row.
type Like struct {
	ObjectId     uuid.UUID         `json:"objectId" db:"id"`
	OwnerUserId  uuid.UUID         `json:"ownerUserId" db:"owner_user_id"`
	LikeableType targetmodels.Kind `json:"likeableType" db:"likeable_type"`
	LikeableId   uuid.UUID         `json:"likeableId" db:"likeable_id"`
	CreatedDate  int64             `json:"createdDate" db:"created_date"`
}

// ToggleLikeRequest represents the request payload for toggling a like
type ToggleLikeRequest struct {
	LikeableType string `json:"likeableType" validate:"required"`
	LikeableId   string `json:"likeableId" validate:"required"`
}

// ToggleAction is the outcome of a toggle call
type ToggleAction string

const (
	ActionLiked   ToggleAction = "liked"
	ActionUnliked ToggleAction = "unliked"
)

// ToggleLikeResponse reports which way the toggle went and the resulting
// state for the calling user
type ToggleLikeResponse struct {
	Action ToggleAction `json:"action"`
	Liked  bool         `json:"liked"`
}

// LikeStatusResponse carries the like state of a target for the calling
// user together with its current like count
type LikeStatusResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
