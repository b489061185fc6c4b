package models

import (
	"fmt"
)

// Kind tags the entity type a comment or like points at. The pair
// (kind, target id) is stored without a foreign key; validity is checked
// procedurally at write time against the kind's own table.
type Kind string

const (
	KindGallery Kind = "gallery"
	KindBlog    Kind = "blog"
	KindPost    Kind = "post"
	KindComment Kind = "comment"
	KindReply   Kind = "reply"
)

// CommentableKinds are the content kinds comments can attach to.
var CommentableKinds = []Kind{KindGallery, KindBlog}

// LikeableKinds are the kinds likes can attach to: the commentable content
// kinds plus posts, comments and replies.
var LikeableKinds = []Kind{KindGallery, KindBlog, KindPost, KindComment, KindReply}

// ContentKinds are the kinds backed by their own content table, carrying
// like_count and comment_count columns maintained by the counter engine.
var ContentKinds = []Kind{KindGallery, KindBlog, KindPost}

// String returns the kind tag
func (k Kind) String() string {
	return string(k)
}

// IsContent reports whether the kind is backed by a content table
func (k Kind) IsContent() bool {
	return containsKind(ContentKinds, k)
}

// ValidateKind checks a kind against an allowed set. Unknown kinds fail
// closed.
func ValidateKind(kind Kind, allowed []Kind) error {
	if containsKind(allowed, kind) {
		return nil
	}
	return fmt.Errorf("invalid target kind: %q", kind)
}

// IsCommentable reports whether comments may attach to the kind
func IsCommentable(kind Kind) bool {
	return containsKind(CommentableKinds, kind)
}

// IsLikeable reports whether likes may attach to the kind
func IsLikeable(kind Kind) bool {
	return containsKind(LikeableKinds, kind)
}

func containsKind(kinds []Kind, kind Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// CounterPatch carries the denormalized counter values to write onto a
// content row. Nil fields are left untouched.
type CounterPatch struct {
	LikeCount    *int64
	CommentCount *int64
}

// LikeCountPatch builds a patch updating only like_count
func LikeCountPatch(count int64) CounterPatch {
	return CounterPatch{LikeCount: &count}
}

// CommentCountPatch builds a patch updating only comment_count
func CommentCountPatch(count int64) CounterPatch {
	return CounterPatch{CommentCount: &count}
}
