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
	"github.com/alumlink/alumlink-api/internal/types"
	likesErrors "github.com/alumlink/alumlink-api/likes/errors"
	"github.com/alumlink/alumlink-api/likes/models"
	likeRepository "github.com/alumlink/alumlink-api/likes/repository"
	replymodels "github.com/alumlink/alumlink-api/replies/models"
	replyRepository "github.com/alumlink/alumlink-api/replies/repository"
	sharedInterfaces "github.com/alumlink/alumlink-api/shared/interfaces"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// likeService implements the LikeService interface. Likes are polymorphic,
// so the service dispatches existence checks to whichever module owns the
// target kind.
type likeService struct {
	likeRepo      likeRepository.LikeRepository
	commentRepo   commentRepository.CommentRepository
	replyRepo     replyRepository.ReplyRepository
	targetChecker sharedInterfaces.TargetChecker
	counterEngine *counters.Engine
	cacheService  *cache.GenericCacheService
}

// NewLikeService wires the like service with its dependencies
func NewLikeService(
	likeRepo likeRepository.LikeRepository,
	commentRepo commentRepository.CommentRepository,
	replyRepo replyRepository.ReplyRepository,
	targetChecker sharedInterfaces.TargetChecker,
	counterEngine *counters.Engine,
	cacheService *cache.GenericCacheService,
) LikeService {
	return &likeService{
		likeRepo:      likeRepo,
		commentRepo:   commentRepo,
		replyRepo:     replyRepo,
		targetChecker: targetChecker,
		counterEngine: counterEngine,
		cacheService:  cacheService,
	}
}

// ToggleLike flips the calling user's like on a target. Insert-then-delete
// gives toggle semantics without a read: a conflicting insert means the like
// existed, so the toggle removes it. Concurrent double-toggles land on one
// of the two legal outcomes, never on a duplicate row.
func (s *likeService) ToggleLike(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, user *types.UserContext) (*models.ToggleLikeResponse, error) {
	if user == nil {
		return nil, likesErrors.ErrMissingUserContext
	}

	rootComment, err := s.checkTarget(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	likeID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate like ID: %w", err)
	}

	like := &models.Like{
		ObjectId:     likeID,
		OwnerUserId:  user.UserID,
		LikeableType: kind,
		LikeableId:   targetID,
	}

	created, err := s.likeRepo.Insert(ctx, like)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	result := &models.ToggleLikeResponse{Action: models.ActionLiked, Liked: true}
	if !created {
		if _, err := s.likeRepo.Delete(ctx, user.UserID, kind, targetID); err != nil {
			return nil, fmt.Errorf("failed to toggle like: %w", err)
		}
		result = &models.ToggleLikeResponse{Action: models.ActionUnliked, Liked: false}
	}

	s.refreshLikeCount(ctx, kind, targetID)
	s.invalidateCachedPages(ctx, kind, targetID, rootComment)

	return result, nil
}

// GetLikeStatus returns the live like count and the caller's like state
func (s *likeService) GetLikeStatus(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, user *types.UserContext) (*models.LikeStatusResponse, error) {
	if _, err := s.checkTarget(ctx, kind, targetID); err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountByTarget(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	liked := false
	if user != nil {
		liked, err = s.likeRepo.Exists(ctx, user.UserID, kind, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to check like: %w", err)
		}
	}

	return &models.LikeStatusResponse{Liked: liked, LikeCount: count}, nil
}

// checkTarget verifies the target kind is likeable and the target itself is
// visible. For comment and reply targets it returns the root comment, which
// later drives cache invalidation.
func (s *likeService) checkTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (*commentmodels.Comment, error) {
	if !targetmodels.IsLikeable(kind) {
		return nil, likesErrors.ErrInvalidTargetType
	}

	switch kind {
	case targetmodels.KindComment:
		comment, err := s.findVisibleComment(ctx, targetID)
		if err != nil {
			return nil, err
		}
		return comment, nil

	case targetmodels.KindReply:
		reply, err := s.replyRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, replyRepository.ErrReplyNotFound) {
				return nil, likesErrors.ErrTargetNotFound
			}
			return nil, fmt.Errorf("failed to check reply: %w", err)
		}
		if reply.Status != replymodels.StatusActive {
			return nil, likesErrors.ErrTargetNotFound
		}
		return s.findVisibleComment(ctx, reply.CommentId)

	default:
		exists, err := s.targetChecker.Exists(ctx, kind, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to check target: %w", err)
		}
		if !exists {
			return nil, likesErrors.ErrTargetNotFound
		}
		return nil, nil
	}
}

func (s *likeService) findVisibleComment(ctx context.Context, commentID uuid.UUID) (*commentmodels.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, commentRepository.ErrCommentNotFound) {
			return nil, likesErrors.ErrTargetNotFound
		}
		return nil, fmt.Errorf("failed to check comment: %w", err)
	}
	if comment.Status != commentmodels.StatusActive {
		return nil, likesErrors.ErrTargetNotFound
	}
	return comment, nil
}

// refreshLikeCount recomputes the target's like counter. Failures never
// fail the toggle; the counter converges on the next recompute.
func (s *likeService) refreshLikeCount(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) {
	if s.counterEngine == nil {
		return
	}
	if err := s.counterEngine.RecomputeLikeCount(ctx, kind, targetID); err != nil {
		log.WarnWithContext(ctx, "Like count recompute failed for %s %s: %v", kind, targetID, err)
	}
}

// invalidateCachedPages drops the cached comment pages whose like counts or
// isLiked annotations the toggle just changed
func (s *likeService) invalidateCachedPages(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, rootComment *commentmodels.Comment) {
	if s.cacheService == nil {
		return
	}

	var pattern string
	switch {
	case rootComment != nil:
		pattern = fmt.Sprintf("list:%s:%s:*", rootComment.CommentableType, rootComment.CommentableId)
	case targetmodels.IsCommentable(kind):
		pattern = fmt.Sprintf("list:%s:%s:*", kind, targetID)
	default:
		return
	}

	if err := s.cacheService.InvalidatePattern(ctx, pattern); err != nil {
		log.Warn("Cache invalidation failed for %s %s: %v", kind, targetID, err)
	}
}
