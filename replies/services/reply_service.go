package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"

	commentmodels "github.com/alumlink/alumlink-api/comments/models"
	commentRepository "github.com/alumlink/alumlink-api/comments/repository"
	"github.com/alumlink/alumlink-api/counters"
	"github.com/alumlink/alumlink-api/internal/cache"
	"github.com/alumlink/alumlink-api/internal/pkg/log"
	platformconfig "github.com/alumlink/alumlink-api/internal/platform/config"
	"github.com/alumlink/alumlink-api/internal/types"
	"github.com/alumlink/alumlink-api/internal/utils"
	repliesErrors "github.com/alumlink/alumlink-api/replies/errors"
	"github.com/alumlink/alumlink-api/replies/models"
	replyRepository "github.com/alumlink/alumlink-api/replies/repository"
	"github.com/alumlink/alumlink-api/replies/validation"
)

// replyService implements the ReplyService interface
type replyService struct {
	replyRepo     replyRepository.ReplyRepository
	commentRepo   commentRepository.CommentRepository
	counterEngine *counters.Engine
	cacheService  *cache.GenericCacheService
	config        *platformconfig.Config
}

// NewReplyService wires the reply service with its dependencies. The cache
// service must be the same instance the comment service lists through, so
// reply mutations can drop the cached comment pages they affect.
func NewReplyService(
	replyRepo replyRepository.ReplyRepository,
	commentRepo commentRepository.CommentRepository,
	counterEngine *counters.Engine,
	cacheService *cache.GenericCacheService,
	cfg *platformconfig.Config,
) ReplyService {
	return &replyService{
		replyRepo:     replyRepo,
		commentRepo:   commentRepo,
		counterEngine: counterEngine,
		cacheService:  cacheService,
		config:        cfg,
	}
}

// CreateReply creates a direct or nested reply
func (s *replyService) CreateReply(ctx context.Context, req *models.CreateReplyRequest, user *types.UserContext) (*models.Reply, error) {
	if user == nil {
		return nil, repliesErrors.ErrMissingUserContext
	}
	if err := validation.ValidateCreateReplyRequest(req); err != nil {
		return nil, err
	}

	var (
		rootComment *commentmodels.Comment
		parent      *models.Reply
		depth       int
		err         error
	)

	if req.ParentReplyId != nil {
		parent, err = s.findActiveReply(ctx, *req.ParentReplyId)
		if err != nil {
			if errors.Is(err, repliesErrors.ErrReplyNotFound) {
				return nil, repliesErrors.ErrParentReplyNotFound
			}
			return nil, err
		}

		depth = parent.Depth + 1
		if depth > s.config.Engagement.MaxReplyDepth {
			return nil, repliesErrors.ErrDepthLimitExceeded
		}

		// The root comment is inherited from the parent, so every reply in
		// a thread points at the same comment no matter how deep it sits.
		rootComment, err = s.findActiveComment(ctx, parent.CommentId)
		if err != nil {
			return nil, err
		}
	} else {
		rootComment, err = s.findActiveComment(ctx, *req.CommentId)
		if err != nil {
			return nil, err
		}
		depth = 0
	}

	replyID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reply ID: %w", err)
	}

	now := utils.UTCNowUnix()
	reply := &models.Reply{
		ObjectId:         replyID,
		CommentId:        rootComment.ObjectId,
		OwnerUserId:      user.UserID,
		OwnerDisplayName: user.DisplayName,
		OwnerAvatar:      user.Avatar,
		Text:             validation.NormalizeText(req.Text),
		Depth:            depth,
		Status:           models.StatusActive,
		CreatedDate:      now,
		LastUpdated:      now,
	}
	if parent != nil {
		parentID := parent.ObjectId
		reply.ParentReplyId = &parentID
	}

	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	s.refreshCounters(ctx, reply, rootComment)
	s.invalidateTargetComments(ctx, rootComment)

	return reply, nil
}

// UpdateReply edits a reply's text or moves its status
func (s *replyService) UpdateReply(ctx context.Context, replyID uuid.UUID, req *models.UpdateReplyRequest, user *types.UserContext) (*models.Reply, error) {
	if user == nil {
		return nil, repliesErrors.ErrMissingUserContext
	}
	if err := validation.ValidateUpdateReplyRequest(req); err != nil {
		return nil, err
	}

	reply, err := s.findExisting(ctx, replyID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		if reply.OwnerUserId != user.UserID {
			return nil, repliesErrors.ErrPermissionDenied
		}

		text := validation.NormalizeText(*req.Text)
		if err := s.replyRepo.UpdateText(ctx, replyID, text); err != nil {
			return nil, fmt.Errorf("failed to update reply text: %w", err)
		}
		reply.Text = text
		reply.LastUpdated = utils.UTCNowUnix()
	}

	if req.Status != nil && *req.Status != reply.Status {
		if reply.OwnerUserId != user.UserID && !user.IsElevated() {
			return nil, repliesErrors.ErrPermissionDenied
		}
		if !reply.Status.CanTransitionTo(*req.Status) {
			return nil, repliesErrors.ErrInvalidStatusTransition
		}

		if err := s.replyRepo.UpdateStatus(ctx, replyID, *req.Status); err != nil {
			return nil, fmt.Errorf("failed to update reply status: %w", err)
		}
		reply.Status = *req.Status
		reply.LastUpdated = utils.UTCNowUnix()

		s.refreshAfterVisibilityChange(ctx, reply)
	}

	s.invalidateThread(ctx, reply)

	return reply, nil
}

// DeleteReply soft-deletes a reply
func (s *replyService) DeleteReply(ctx context.Context, replyID uuid.UUID, user *types.UserContext) error {
	if user == nil {
		return repliesErrors.ErrMissingUserContext
	}

	reply, err := s.findExisting(ctx, replyID)
	if err != nil {
		return err
	}

	if reply.OwnerUserId != user.UserID && !user.IsElevated() {
		return repliesErrors.ErrPermissionDenied
	}

	if err := s.replyRepo.UpdateStatus(ctx, replyID, models.StatusDeleted); err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	reply.Status = models.StatusDeleted

	s.refreshAfterVisibilityChange(ctx, reply)
	s.invalidateThread(ctx, reply)

	return nil
}

// findExisting loads a reply and treats deleted rows as absent
func (s *replyService) findExisting(ctx context.Context, replyID uuid.UUID) (*models.Reply, error) {
	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, replyRepository.ErrReplyNotFound) {
			return nil, repliesErrors.ErrReplyNotFound
		}
		return nil, fmt.Errorf("failed to find reply: %w", err)
	}

	if reply.Status == models.StatusDeleted {
		return nil, repliesErrors.ErrReplyNotFound
	}

	return reply, nil
}

// findActiveReply loads a reply that may receive engagement
func (s *replyService) findActiveReply(ctx context.Context, replyID uuid.UUID) (*models.Reply, error) {
	reply, err := s.findExisting(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if !reply.IsActive() {
		return nil, repliesErrors.ErrReplyNotFound
	}
	return reply, nil
}

// findActiveComment loads a comment that may receive replies
func (s *replyService) findActiveComment(ctx context.Context, commentID uuid.UUID) (*commentmodels.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, commentRepository.ErrCommentNotFound) {
			return nil, repliesErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if !comment.IsActive() {
		return nil, repliesErrors.ErrCommentNotFound
	}

	return comment, nil
}

// refreshCounters recomputes every counter a new reply touches: the parent's
// child counter (or the comment's direct counter) and the target's total.
// Failures are logged and repaired by the next recompute.
func (s *replyService) refreshCounters(ctx context.Context, reply *models.Reply, rootComment *commentmodels.Comment) {
	if s.counterEngine == nil {
		return
	}

	if reply.ParentReplyId != nil {
		if err := s.counterEngine.RecomputeNestedReplyCount(ctx, *reply.ParentReplyId); err != nil {
			log.WarnWithContext(ctx, "Nested reply count recompute failed for reply %s: %v", reply.ParentReplyId, err)
		}
	} else {
		if err := s.counterEngine.RecomputeReplyCount(ctx, reply.CommentId); err != nil {
			log.WarnWithContext(ctx, "Reply count recompute failed for comment %s: %v", reply.CommentId, err)
		}
	}

	if err := s.counterEngine.RecomputeCommentCount(ctx, rootComment.CommentableType, rootComment.CommentableId); err != nil {
		log.WarnWithContext(ctx, "Comment count recompute failed for %s %s: %v", rootComment.CommentableType, rootComment.CommentableId, err)
	}
}

// refreshAfterVisibilityChange recomputes counters once a reply moves in or
// out of view. The root comment is loaded regardless of its own status so
// hidden threads still converge.
func (s *replyService) refreshAfterVisibilityChange(ctx context.Context, reply *models.Reply) {
	if s.counterEngine == nil {
		return
	}

	if reply.ParentReplyId != nil {
		if err := s.counterEngine.RecomputeNestedReplyCount(ctx, *reply.ParentReplyId); err != nil {
			log.WarnWithContext(ctx, "Nested reply count recompute failed for reply %s: %v", reply.ParentReplyId, err)
		}
	} else {
		if err := s.counterEngine.RecomputeReplyCount(ctx, reply.CommentId); err != nil {
			log.WarnWithContext(ctx, "Reply count recompute failed for comment %s: %v", reply.CommentId, err)
		}
	}

	comment, err := s.commentRepo.FindByID(ctx, reply.CommentId)
	if err != nil {
		log.WarnWithContext(ctx, "Comment lookup failed during counter refresh for reply %s: %v", reply.ObjectId, err)
		return
	}

	if err := s.counterEngine.RecomputeCommentCount(ctx, comment.CommentableType, comment.CommentableId); err != nil {
		log.WarnWithContext(ctx, "Comment count recompute failed for %s %s: %v", comment.CommentableType, comment.CommentableId, err)
	}
}

// invalidateThread drops the cached comment pages containing this reply
func (s *replyService) invalidateThread(ctx context.Context, reply *models.Reply) {
	if s.cacheService == nil {
		return
	}

	comment, err := s.commentRepo.FindByID(ctx, reply.CommentId)
	if err != nil {
		log.WarnWithContext(ctx, "Comment lookup failed during cache invalidation for reply %s: %v", reply.ObjectId, err)
		return
	}

	s.invalidateTargetComments(ctx, comment)
}

func (s *replyService) invalidateTargetComments(ctx context.Context, comment *commentmodels.Comment) {
	if s.cacheService == nil {
		return
	}

	pattern := fmt.Sprintf("list:%s:%s:*", comment.CommentableType, comment.CommentableId)
	if err := s.cacheService.InvalidatePattern(ctx, pattern); err != nil {
		log.Warn("Cache invalidation failed for %s %s comments: %v", comment.CommentableType, comment.CommentableId, err)
	}
}
