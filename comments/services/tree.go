package services

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/comments/models"
	likerepo "github.com/alumlink/alumlink-api/likes/repository"
	replymodels "github.com/alumlink/alumlink-api/replies/models"
	replyrepo "github.com/alumlink/alumlink-api/replies/repository"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// treeBuilder assembles reply trees beneath a page of comments. It walks
// level by level, one query per parent per level, so the total query count
// is bounded by the depth cap rather than the thread size.
type treeBuilder struct {
	replyRepo replyrepo.ReplyRepository
	likeRepo  likerepo.LikeRepository
}

func newTreeBuilder(replyRepo replyrepo.ReplyRepository, likeRepo likerepo.LikeRepository) *treeBuilder {
	return &treeBuilder{replyRepo: replyRepo, likeRepo: likeRepo}
}

// Assemble converts a page of comments into responses, attaching reply
// trees down to maxDepth levels (0 attaches none) and annotating isLiked
// for the given user. A nil userID leaves every annotation false.
func (b *treeBuilder) Assemble(ctx context.Context, comments []models.Comment, maxDepth int, userID *uuid.UUID) ([]models.CommentResponse, error) {
	responses := make([]models.CommentResponse, len(comments))

	commentIDs := make([]uuid.UUID, len(comments))
	for i, comment := range comments {
		commentIDs[i] = comment.ObjectId
	}

	likedComments, err := b.likedSet(ctx, userID, targetmodels.KindComment, commentIDs)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		comment := &comments[i]
		responses[i] = models.CommentResponse{
			ObjectId:         comment.ObjectId.String(),
			OwnerUserId:      comment.OwnerUserId.String(),
			OwnerDisplayName: comment.OwnerDisplayName,
			OwnerAvatar:      comment.OwnerAvatar,
			CommentableType:  string(comment.CommentableType),
			CommentableId:    comment.CommentableId.String(),
			Text:             comment.Text,
			LikeCount:        comment.LikeCount,
			ReplyCount:       comment.ReplyCount,
			IsLiked:          likedComments[comment.ObjectId],
			CreatedDate:      comment.CreatedDate,
			LastUpdated:      comment.LastUpdated,
		}

		if maxDepth > 0 {
			replies, err := b.replyRepo.FindVisibleByComment(ctx, comment.ObjectId)
			if err != nil {
				return nil, fmt.Errorf("failed to load replies for comment %s: %w", comment.ObjectId, err)
			}

			responses[i].Replies, err = b.assembleLevel(ctx, replies, maxDepth-1, userID)
			if err != nil {
				return nil, err
			}
		}
	}

	return responses, nil
}

// assembleLevel converts one sibling set of replies, recursing into children
// while the remaining depth budget allows
func (b *treeBuilder) assembleLevel(ctx context.Context, replies []replymodels.Reply, remaining int, userID *uuid.UUID) ([]replymodels.ReplyResponse, error) {
	if len(replies) == 0 {
		return nil, nil
	}

	replyIDs := make([]uuid.UUID, len(replies))
	for i, reply := range replies {
		replyIDs[i] = reply.ObjectId
	}

	likedReplies, err := b.likedSet(ctx, userID, targetmodels.KindReply, replyIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]replymodels.ReplyResponse, len(replies))
	for i := range replies {
		reply := &replies[i]
		responses[i] = replyResponse(reply, likedReplies[reply.ObjectId])

		// Always descend while depth allows. reply_count only tracks active
		// children, so gating on it would skip tombstoned subtrees.
		if remaining > 0 {
			children, err := b.replyRepo.FindVisibleByParent(ctx, reply.ObjectId)
			if err != nil {
				return nil, fmt.Errorf("failed to load children for reply %s: %w", reply.ObjectId, err)
			}

			responses[i].Replies, err = b.assembleLevel(ctx, children, remaining-1, userID)
			if err != nil {
				return nil, err
			}
		}
	}

	return responses, nil
}

func (b *treeBuilder) likedSet(ctx context.Context, userID *uuid.UUID, kind targetmodels.Kind, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	if userID == nil || len(ids) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	liked, err := b.likeRepo.FindLikedByUser(ctx, *userID, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load like annotations: %w", err)
	}
	return liked, nil
}

// replyResponse converts a reply row. Non-active rows only reach the tree as
// placeholders for their active descendants; their text and author are masked
// and isDeleted is set so clients render a tombstone.
func replyResponse(reply *replymodels.Reply, isLiked bool) replymodels.ReplyResponse {
	var parentID *string
	if reply.ParentReplyId != nil {
		s := reply.ParentReplyId.String()
		parentID = &s
	}

	response := replymodels.ReplyResponse{
		ObjectId:         reply.ObjectId.String(),
		CommentId:        reply.CommentId.String(),
		ParentReplyId:    parentID,
		OwnerUserId:      reply.OwnerUserId.String(),
		OwnerDisplayName: reply.OwnerDisplayName,
		OwnerAvatar:      reply.OwnerAvatar,
		Text:             reply.Text,
		Depth:            reply.Depth,
		LikeCount:        reply.LikeCount,
		ReplyCount:       reply.ReplyCount,
		IsLiked:          isLiked,
		CreatedDate:      reply.CreatedDate,
		LastUpdated:      reply.LastUpdated,
	}

	if reply.Status != replymodels.StatusActive {
		response.Text = ""
		response.OwnerUserId = ""
		response.OwnerDisplayName = ""
		response.OwnerAvatar = ""
		response.IsLiked = false
		response.IsDeleted = true
	}

	return response
}
