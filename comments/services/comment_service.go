package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	commentsErrors "github.com/alumlink/alumlink-api/comments/errors"
	"github.com/alumlink/alumlink-api/comments/models"
	commentRepository "github.com/alumlink/alumlink-api/comments/repository"
	"github.com/alumlink/alumlink-api/comments/validation"
	"github.com/alumlink/alumlink-api/counters"
	"github.com/alumlink/alumlink-api/internal/cache"
	"github.com/alumlink/alumlink-api/internal/pkg/log"
	platformconfig "github.com/alumlink/alumlink-api/internal/platform/config"
	"github.com/alumlink/alumlink-api/internal/types"
	"github.com/alumlink/alumlink-api/internal/utils"
	likeRepository "github.com/alumlink/alumlink-api/likes/repository"
	replyRepository "github.com/alumlink/alumlink-api/replies/repository"
	sharedInterfaces "github.com/alumlink/alumlink-api/shared/interfaces"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

const listCacheTTL = 5 * time.Minute

// commentService implements the CommentService interface
type commentService struct {
	commentRepo   commentRepository.CommentRepository
	targetChecker sharedInterfaces.TargetChecker
	counterEngine *counters.Engine
	cacheService  *cache.GenericCacheService
	config        *platformconfig.Config
	tree          *treeBuilder
}

// NewCommentService wires the comment service with its dependencies. The
// cache service may be nil; listing then always hits the database.
func NewCommentService(
	commentRepo commentRepository.CommentRepository,
	replyRepo replyRepository.ReplyRepository,
	likeRepo likeRepository.LikeRepository,
	targetChecker sharedInterfaces.TargetChecker,
	counterEngine *counters.Engine,
	cacheService *cache.GenericCacheService,
	cfg *platformconfig.Config,
) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		targetChecker: targetChecker,
		counterEngine: counterEngine,
		cacheService:  cacheService,
		config:        cfg,
		tree:          newTreeBuilder(replyRepo, likeRepo),
	}
}

// CreateComment attaches a new comment to a commentable target
func (s *commentService) CreateComment(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, req *models.CreateCommentRequest, user *types.UserContext) (*models.Comment, error) {
	if user == nil {
		return nil, commentsErrors.ErrMissingUserContext
	}
	if !targetmodels.IsCommentable(kind) {
		return nil, commentsErrors.ErrInvalidTargetType
	}
	if err := validation.ValidateCreateCommentRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.targetChecker.Exists(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check target: %w", err)
	}
	if !exists {
		return nil, commentsErrors.ErrTargetNotFound
	}

	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment ID: %w", err)
	}

	now := utils.UTCNowUnix()
	comment := &models.Comment{
		ObjectId:         commentID,
		OwnerUserId:      user.UserID,
		OwnerDisplayName: user.DisplayName,
		OwnerAvatar:      user.Avatar,
		CommentableType:  kind,
		CommentableId:    targetID,
		Text:             validation.NormalizeText(req.Text),
		Status:           models.StatusActive,
		CreatedDate:      now,
		LastUpdated:      now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.refreshTargetCount(ctx, kind, targetID)
	s.invalidateTargetComments(ctx, kind, targetID)

	return comment, nil
}

// GetComments lists active comments on a target
func (s *commentService) GetComments(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, filter *models.CommentQueryFilter, user *types.UserContext) (*models.CommentsListResponse, error) {
	if !targetmodels.IsCommentable(kind) {
		return nil, commentsErrors.ErrInvalidTargetType
	}

	exists, err := s.targetChecker.Exists(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check target: %w", err)
	}
	if !exists {
		return nil, commentsErrors.ErrTargetNotFound
	}

	normalized := s.normalizeFilter(filter)

	cacheKey := s.listCacheKey(kind, targetID, normalized, user)
	if cached := s.getCachedList(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	offset := (normalized.Page - 1) * normalized.Limit
	comments, err := s.commentRepo.FindActiveByTarget(ctx, kind, targetID, normalized.SortOrder, normalized.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	totalItems, err := s.commentRepo.CountActiveByTarget(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	treeDepth := 0
	if normalized.IncludeReplies {
		treeDepth = normalized.MaxDepth
	}

	var userID *uuid.UUID
	if user != nil {
		userID = &user.UserID
	}

	responses, err := s.tree.Assemble(ctx, comments, treeDepth, userID)
	if err != nil {
		return nil, err
	}

	result := &models.CommentsListResponse{
		Comments:   responses,
		Pagination: models.NewPagination(normalized.Page, normalized.Limit, totalItems),
	}

	s.cacheList(ctx, cacheKey, result)

	return result, nil
}

// GetComment fetches a single comment. Only active comments are visible
// through this path; hidden and deleted rows read as absent.
func (s *commentService) GetComment(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, commentRepository.ErrCommentNotFound) {
			return nil, commentsErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.Status != models.StatusActive {
		return nil, commentsErrors.ErrCommentNotFound
	}

	return comment, nil
}

// UpdateComment edits a comment's text or moves its status. Text edits are
// owner-only; status moves are open to the owner and to moderators.
func (s *commentService) UpdateComment(ctx context.Context, commentID uuid.UUID, req *models.UpdateCommentRequest, user *types.UserContext) (*models.Comment, error) {
	if user == nil {
		return nil, commentsErrors.ErrMissingUserContext
	}
	if err := validation.ValidateUpdateCommentRequest(req); err != nil {
		return nil, err
	}

	comment, err := s.findExisting(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		if comment.OwnerUserId != user.UserID {
			return nil, commentsErrors.ErrPermissionDenied
		}

		text := validation.NormalizeText(*req.Text)
		if err := s.commentRepo.UpdateText(ctx, commentID, text); err != nil {
			return nil, fmt.Errorf("failed to update comment text: %w", err)
		}
		comment.Text = text
		comment.LastUpdated = utils.UTCNowUnix()
	}

	if req.Status != nil && *req.Status != comment.Status {
		if comment.OwnerUserId != user.UserID && !user.IsElevated() {
			return nil, commentsErrors.ErrPermissionDenied
		}
		if !comment.Status.CanTransitionTo(*req.Status) {
			return nil, commentsErrors.ErrInvalidStatusTransition
		}

		if err := s.commentRepo.UpdateStatus(ctx, commentID, *req.Status); err != nil {
			return nil, fmt.Errorf("failed to update comment status: %w", err)
		}
		comment.Status = *req.Status
		comment.LastUpdated = utils.UTCNowUnix()

		// A visibility change moves the comment and its whole thread in or
		// out of the target's counter.
		s.refreshTargetCount(ctx, comment.CommentableType, comment.CommentableId)
	}

	s.invalidateTargetComments(ctx, comment.CommentableType, comment.CommentableId)

	return comment, nil
}

// DeleteComment soft-deletes a comment
func (s *commentService) DeleteComment(ctx context.Context, commentID uuid.UUID, user *types.UserContext) error {
	if user == nil {
		return commentsErrors.ErrMissingUserContext
	}

	comment, err := s.findExisting(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.OwnerUserId != user.UserID && !user.IsElevated() {
		return commentsErrors.ErrPermissionDenied
	}

	if err := s.commentRepo.UpdateStatus(ctx, commentID, models.StatusDeleted); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.refreshTargetCount(ctx, comment.CommentableType, comment.CommentableId)
	s.invalidateTargetComments(ctx, comment.CommentableType, comment.CommentableId)

	return nil
}

// findExisting loads a comment and treats deleted rows as absent
func (s *commentService) findExisting(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, commentRepository.ErrCommentNotFound) {
			return nil, commentsErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.Status == models.StatusDeleted {
		return nil, commentsErrors.ErrCommentNotFound
	}

	return comment, nil
}

// normalizeFilter clamps paging and depth parameters to configured bounds
func (s *commentService) normalizeFilter(filter *models.CommentQueryFilter) models.CommentQueryFilter {
	engagement := s.config.Engagement

	normalized := models.CommentQueryFilter{
		Page:           1,
		Limit:          engagement.DefaultPageSize,
		SortOrder:      models.SortNewest,
		IncludeReplies: false,
		MaxDepth:       engagement.DefaultTreeDepth,
	}
	if filter == nil {
		return normalized
	}

	if filter.Page > 0 {
		normalized.Page = filter.Page
	}
	if filter.Limit > 0 {
		normalized.Limit = filter.Limit
	}
	if normalized.Limit > engagement.MaxPageSize {
		normalized.Limit = engagement.MaxPageSize
	}
	if filter.SortOrder.IsValid() {
		normalized.SortOrder = filter.SortOrder
	}
	normalized.IncludeReplies = filter.IncludeReplies
	if filter.MaxDepth > 0 {
		normalized.MaxDepth = filter.MaxDepth
	}
	if normalized.MaxDepth > engagement.MaxTreeDepth {
		normalized.MaxDepth = engagement.MaxTreeDepth
	}

	return normalized
}

// listCacheKey builds a cache key covering everything that shapes the page,
// including the reader identity because isLiked is per-user
func (s *commentService) listCacheKey(kind targetmodels.Kind, targetID uuid.UUID, filter models.CommentQueryFilter, user *types.UserContext) string {
	reader := "anon"
	if user != nil {
		reader = user.UserID.String()
	}

	depth := 0
	if filter.IncludeReplies {
		depth = filter.MaxDepth
	}

	return fmt.Sprintf("list:%s:%s:p%d:l%d:%s:d%d:u:%s",
		kind, targetID, filter.Page, filter.Limit, filter.SortOrder, depth, reader)
}

func (s *commentService) getCachedList(ctx context.Context, cacheKey string) *models.CommentsListResponse {
	if s.cacheService == nil {
		return nil
	}

	var result models.CommentsListResponse
	if err := s.cacheService.GetCached(ctx, cacheKey, &result); err != nil {
		return nil
	}
	return &result
}

func (s *commentService) cacheList(ctx context.Context, cacheKey string, result *models.CommentsListResponse) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.CacheData(ctx, cacheKey, result, listCacheTTL)
}

// invalidateTargetComments drops every cached page for the target
func (s *commentService) invalidateTargetComments(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	pattern := fmt.Sprintf("list:%s:%s:*", kind, targetID)
	if err := s.cacheService.InvalidatePattern(ctx, pattern); err != nil {
		log.Warn("Cache invalidation failed for %s %s comments: %v", kind, targetID, err)
	}
}

// refreshTargetCount recomputes the target's comment counter. Counter
// maintenance never fails the primary operation; failures are logged and
// the next recompute repairs the value.
func (s *commentService) refreshTargetCount(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) {
	if s.counterEngine == nil {
		return
	}
	if err := s.counterEngine.RecomputeCommentCount(ctx, kind, targetID); err != nil {
		log.WarnWithContext(ctx, "Comment count recompute failed for %s %s: %v", kind, targetID, err)
	}
}
