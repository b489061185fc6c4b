// Package counters recomputes the denormalized engagement counters stored
// on targets, comments and replies. Every recompute derives the value from
// the source-of-truth rows and overwrites the stored counter, so repeated
// runs converge on the same number and a missed run is repaired by the next
// one.
package counters

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"

	commentrepo "github.com/alumlink/alumlink-api/comments/repository"
	likerepo "github.com/alumlink/alumlink-api/likes/repository"
	replyrepo "github.com/alumlink/alumlink-api/replies/repository"
	"github.com/alumlink/alumlink-api/shared/interfaces"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// Engine recomputes counters from source-of-truth rows
type Engine struct {
	comments commentrepo.CommentRepository
	replies  replyrepo.ReplyRepository
	likes    likerepo.LikeRepository
	targets  interfaces.TargetStatsUpdater
}

// NewEngine creates a counter engine over the given repositories
func NewEngine(
	comments commentrepo.CommentRepository,
	replies replyrepo.ReplyRepository,
	likes likerepo.LikeRepository,
	targets interfaces.TargetStatsUpdater,
) *Engine {
	return &Engine{
		comments: comments,
		replies:  replies,
		likes:    likes,
		targets:  targets,
	}
}

// RecomputeCommentCount refreshes a target's comment counter. The counter
// covers active comments plus active replies under active comments, so a
// reader sees the total number of visible entries in the discussion.
func (e *Engine) RecomputeCommentCount(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) error {
	commentCount, err := e.comments.CountActiveByTarget(ctx, kind, targetID)
	if err != nil {
		return fmt.Errorf("failed to count comments for %s %s: %w", kind, targetID, err)
	}

	replyCount, err := e.replies.CountActiveByTarget(ctx, kind, targetID)
	if err != nil {
		return fmt.Errorf("failed to count replies for %s %s: %w", kind, targetID, err)
	}

	total := commentCount + replyCount
	if err := e.targets.SetCounters(ctx, kind, targetID, targetmodels.CommentCountPatch(total)); err != nil {
		return fmt.Errorf("failed to store comment count for %s %s: %w", kind, targetID, err)
	}

	return nil
}

// RecomputeReplyCount refreshes a comment's direct reply counter
func (e *Engine) RecomputeReplyCount(ctx context.Context, commentID uuid.UUID) error {
	count, err := e.replies.CountActiveDirect(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to count replies for comment %s: %w", commentID, err)
	}

	if err := e.comments.SetReplyCount(ctx, commentID, count); err != nil {
		return fmt.Errorf("failed to store reply count for comment %s: %w", commentID, err)
	}

	return nil
}

// RecomputeNestedReplyCount refreshes a reply's child counter
func (e *Engine) RecomputeNestedReplyCount(ctx context.Context, replyID uuid.UUID) error {
	count, err := e.replies.CountActiveNested(ctx, replyID)
	if err != nil {
		return fmt.Errorf("failed to count children for reply %s: %w", replyID, err)
	}

	if err := e.replies.SetReplyCount(ctx, replyID, count); err != nil {
		return fmt.Errorf("failed to store nested count for reply %s: %w", replyID, err)
	}

	return nil
}

// RecomputeLikeCount refreshes the like counter of any likeable target,
// dispatching the write to whichever table owns the counter
func (e *Engine) RecomputeLikeCount(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) error {
	count, err := e.likes.CountByTarget(ctx, kind, targetID)
	if err != nil {
		return fmt.Errorf("failed to count likes for %s %s: %w", kind, targetID, err)
	}

	switch kind {
	case targetmodels.KindComment:
		err = e.comments.SetLikeCount(ctx, targetID, count)
	case targetmodels.KindReply:
		err = e.replies.SetLikeCount(ctx, targetID, count)
	default:
		err = e.targets.SetCounters(ctx, kind, targetID, targetmodels.LikeCountPatch(count))
	}
	if err != nil {
		return fmt.Errorf("failed to store like count for %s %s: %w", kind, targetID, err)
	}

	return nil
}
