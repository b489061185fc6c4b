package models

import (
	uuid "github.com/gofrs/uuid"

	replymodels "github.com/alumlink/alumlink-api/replies/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// Status is the moderation state of a comment. Deletion is always a status
// change, never a row removal, so that replies keep their anchor.
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
// Deleted is terminal.
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

// Comment represents a root-level comment on a commentable target
type Comment struct {
	ObjectId         uuid.UUID         `json:"objectId" db:"id"`
	OwnerUserId      uuid.UUID         `json:"ownerUserId" db:"owner_user_id"`
	OwnerDisplayName string            `json:"ownerDisplayName" db:"owner_display_name"`
	OwnerAvatar      string            `json:"ownerAvatar" db:"owner_avatar"`
	CommentableType  targetmodels.Kind `json:"commentableType" db:"commentable_type"`
	CommentableId    uuid.UUID         `json:"commentableId" db:"commentable_id"`
	Text             string            `json:"text" db:"text"`
	LikeCount        int64             `json:"likeCount" db:"like_count"`
	ReplyCount       int64             `json:"replyCount" db:"reply_count"`
	Status           Status            `json:"status" db:"status"`
	CreatedDate      int64             `json:"createdDate" db:"created_date"`
	LastUpdated      int64             `json:"lastUpdated" db:"last_updated"`
}

// IsActive reports whether the comment is visible
func (c *Comment) IsActive() bool {
	return c.Status == StatusActive
}

// CreateCommentRequest represents the request payload for creating a comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest represents the request payload for updating a comment.
// Text edits are owner-only; status edits are owner or moderator.
type UpdateCommentRequest struct {
	Text   *string `json:"text,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// SortOrder for comment listings. Replies are always chronological and do
// not honor this.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// IsValid reports whether the sort order is recognized
func (s SortOrder) IsValid() bool {
	return s == SortNewest || s == SortOldest
}

// CommentQueryFilter carries the decoded query parameters for listing
// comments on a target
type CommentQueryFilter struct {
	Page           int       `schema:"page"`
	Limit          int       `schema:"limit"`
	SortOrder      SortOrder `schema:"sortOrder"`
	IncludeReplies bool      `schema:"includeReplies"`
	MaxDepth       int       `schema:"maxDepth"`
}

// CommentResponse represents the response format for comment data
type CommentResponse struct {
	ObjectId         string                       `json:"objectId"`
	OwnerUserId      string                       `json:"ownerUserId"`
	OwnerDisplayName string                       `json:"ownerDisplayName"`
	OwnerAvatar      string                       `json:"ownerAvatar"`
	CommentableType  string                       `json:"commentableType"`
	CommentableId    string                       `json:"commentableId"`
	Text             string                       `json:"text"`
	LikeCount        int64                        `json:"likeCount"`
	ReplyCount       int64                        `json:"replyCount"`
	IsLiked          bool                         `json:"isLikedByCurrentUser"`
	CreatedDate      int64                        `json:"createdDate"`
	LastUpdated      int64                        `json:"lastUpdated,omitempty"`
	Replies          []replymodels.ReplyResponse  `json:"replies,omitempty"`
}

// Pagination describes the page of results returned by a listing
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// NewPagination computes page metadata from a total count and the
// normalized page/limit values
func NewPagination(page, limit int, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// CommentsListResponse represents a paginated page of comments, optionally
// with assembled reply trees
type CommentsListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination Pagination        `json:"pagination"`
}
