package models

import (
	uuid "github.com/gofrs/uuid"
)

// Status is the moderation state of a reply. Deleted rows stay in the table
// to preserve the thread structure beneath them.
type Status string

const (
	StatusActive  Status = "active"
	StatusHidden  Status = "hidden"
	StatusDeleted Status = "deleted"
)

// IsValid reports whether the status is a known state
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusHidden || s == StatusDeleted
}

// CanTransitionTo reports whether the status may move to the given state.
// Deleted is terminal; there is no restore.
func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusActive:
		return to == StatusHidden || to == StatusDeleted
	case StatusHidden:
		return to == StatusActive || to == StatusDeleted
	default:
		return false
	}
}

// Reply represents a reply row. Every reply stores the root comment id in
// CommentId, however deep it is nested; ParentReplyId is nil for direct
// replies and points at the immediate parent otherwise.
type Reply struct {
	ObjectId         uuid.UUID  `json:"objectId" db:"id"`
	CommentId        uuid.UUID  `json:"commentId" db:"comment_id"`
	ParentReplyId    *uuid.UUID `json:"parentReplyId,omitempty" db:"parent_reply_id"`
	OwnerUserId      uuid.UUID  `json:"ownerUserId" db:"owner_user_id"`
	OwnerDisplayName string     `json:"ownerDisplayName" db:"owner_display_name"`
	OwnerAvatar      string     `json:"ownerAvatar" db:"owner_avatar"`
	Text             string     `json:"text" db:"text"`
	Depth            int        `json:"depth" db:"depth"`
	LikeCount        int64      `json:"likeCount" db:"like_count"`
	ReplyCount       int64      `json:"replyCount" db:"reply_count"`
	Status           Status     `json:"status" db:"status"`
	CreatedDate      int64      `json:"createdDate" db:"created_date"`
	LastUpdated      int64      `json:"lastUpdated" db:"last_updated"`
}

// IsActive reports whether the reply is visible
func (r *Reply) IsActive() bool {
	return r.Status == StatusActive
}

// CreateReplyRequest represents the request payload for creating a reply.
// Exactly one of CommentId/ParentReplyId must be set: CommentId creates a
// direct reply, ParentReplyId a nested one (the root comment is inherited
// from the parent).
type CreateReplyRequest struct {
	CommentId     *uuid.UUID `json:"commentId,omitempty"`
	ParentReplyId *uuid.UUID `json:"parentReplyId,omitempty"`
	Text          string     `json:"text" validate:"required,min=1,max=500"`
}

// UpdateReplyRequest represents the request payload for updating a reply
type UpdateReplyRequest struct {
	Text   *string `json:"text,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// ReplyResponse represents the response format for reply data, including
// the nested children attached by tree assembly.
type ReplyResponse struct {
	ObjectId         string          `json:"objectId"`
	CommentId        string          `json:"commentId"`
	ParentReplyId    *string         `json:"parentReplyId,omitempty"`
	OwnerUserId      string          `json:"ownerUserId"`
	OwnerDisplayName string          `json:"ownerDisplayName"`
	OwnerAvatar      string          `json:"ownerAvatar"`
	Text             string          `json:"text"`
	Depth            int             `json:"depth"`
	LikeCount        int64           `json:"likeCount"`
	ReplyCount       int64           `json:"replyCount"`
	IsLiked          bool            `json:"isLikedByCurrentUser"`
	IsDeleted        bool            `json:"isDeleted,omitempty"`
	CreatedDate      int64           `json:"createdDate"`
	LastUpdated      int64           `json:"lastUpdated,omitempty"`
	Replies          []ReplyResponse `json:"replies,omitempty"`
}
