package services

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commentmodels "github.com/alumlink/alumlink-api/comments/models"
	commentMocks "github.com/alumlink/alumlink-api/comments/repository/mocks"
	"github.com/alumlink/alumlink-api/counters"
	"github.com/alumlink/alumlink-api/internal/types"
	likesErrors "github.com/alumlink/alumlink-api/likes/errors"
	"github.com/alumlink/alumlink-api/likes/models"
	likeMocks "github.com/alumlink/alumlink-api/likes/repository/mocks"
	replymodels "github.com/alumlink/alumlink-api/replies/models"
	replyMocks "github.com/alumlink/alumlink-api/replies/repository/mocks"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
	targetMocks "github.com/alumlink/alumlink-api/targets/repository/mocks"
)

type likeServiceFixture struct {
	likeRepo    *likeMocks.MockLikeRepository
	commentRepo *commentMocks.MockCommentRepository
	replyRepo   *replyMocks.MockReplyRepository
	targetRepo  *targetMocks.MockTargetRepository
	service     LikeService
}

func newLikeServiceFixture(withEngine bool) *likeServiceFixture {
	f := &likeServiceFixture{
		likeRepo:    new(likeMocks.MockLikeRepository),
		commentRepo: new(commentMocks.MockCommentRepository),
		replyRepo:   new(replyMocks.MockReplyRepository),
		targetRepo:  new(targetMocks.MockTargetRepository),
	}

	var engine *counters.Engine
	if withEngine {
		engine = counters.NewEngine(f.commentRepo, f.replyRepo, f.likeRepo, f.targetRepo)
	}

	f.service = NewLikeService(f.likeRepo, f.commentRepo, f.replyRepo, f.targetRepo, engine, nil)
	return f
}

func testUser() *types.UserContext {
	userID, _ := uuid.NewV4()
	return &types.UserContext{UserID: userID, DisplayName: "Jordan Teo", SystemRole: types.UserRole}
}

func TestToggleLike(t *testing.T) {
	user := testUser()

	t.Run("first toggle likes a gallery", func(t *testing.T) {
		f := newLikeServiceFixture(false)
		galleryID, _ := uuid.NewV4()
		f.targetRepo.On("Exists", mock.Anything, targetmodels.KindGallery, galleryID).Return(true, nil)
		f.likeRepo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Like")).Return(true, nil)

		result, err := f.service.ToggleLike(context.Background(), targetmodels.KindGallery, galleryID, user)

		require.NoError(t, err)
		assert.Equal(t, models.ActionLiked, result.Action)
		assert.True(t, result.Liked)
		f.likeRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second toggle removes the like", func(t *testing.T) {
		f := newLikeServiceFixture(false)
		galleryID, _ := uuid.NewV4()
		f.targetRepo.On("Exists", mock.Anything, targetmodels.KindGallery, galleryID).Return(true, nil)
		f.likeRepo.On("Insert", mock.Anything, mock.Anything).Return(false, nil)
		f.likeRepo.On("Delete", mock.Anything, user.UserID, targetmodels.KindGallery, galleryID).Return(true, nil)

		result, err := f.service.ToggleLike(context.Background(), targetmodels.KindGallery, galleryID, user)

		require.NoError(t, err)
		assert.Equal(t, models.ActionUnliked, result.Action)
		assert.False(t, result.Liked)
	})

	t.Run("like on a comment refreshes its counter", func(t *testing.T) {
		f := newLikeServiceFixture(true)
		commentID, _ := uuid.NewV4()
		targetID, _ := uuid.NewV4()
		owner, _ := uuid.NewV4()
		comment := &commentmodels.Comment{
			ObjectId:        commentID,
			OwnerUserId:     owner,
			CommentableType: targetmodels.KindBlog,
			CommentableId:   targetID,
			Status:          commentmodels.StatusActive,
		}
		f.commentRepo.On("FindByID", mock.Anything, commentID).Return(comment, nil)
		f.likeRepo.On("Insert", mock.Anything, mock.Anything).Return(true, nil)
		f.likeRepo.On("CountByTarget", mock.Anything, targetmodels.KindComment, commentID).Return(int64(7), nil)
		f.commentRepo.On("SetLikeCount", mock.Anything, commentID, int64(7)).Return(nil)

		result, err := f.service.ToggleLike(context.Background(), targetmodels.KindComment, commentID, user)

		require.NoError(t, err)
		assert.True(t, result.Liked)
		f.commentRepo.AssertExpectations(t)
	})

	t.Run("like on a reply dispatches through its root comment", func(t *testing.T) {
		f := newLikeServiceFixture(true)
		replyID, _ := uuid.NewV4()
		commentID, _ := uuid.NewV4()
		targetID, _ := uuid.NewV4()
		owner, _ := uuid.NewV4()
		reply := &replymodels.Reply{
			ObjectId:    replyID,
			CommentId:   commentID,
			OwnerUserId: owner,
			Status:      replymodels.StatusActive,
		}
		comment := &commentmodels.Comment{
			ObjectId:        commentID,
			OwnerUserId:     owner,
			CommentableType: targetmodels.KindGallery,
			CommentableId:   targetID,
			Status:          commentmodels.StatusActive,
		}
		f.replyRepo.On("FindByID", mock.Anything, replyID).Return(reply, nil)
		f.commentRepo.On("FindByID", mock.Anything, commentID).Return(comment, nil)
		f.likeRepo.On("Insert", mock.Anything, mock.Anything).Return(true, nil)
		f.likeRepo.On("CountByTarget", mock.Anything, targetmodels.KindReply, replyID).Return(int64(1), nil)
		f.replyRepo.On("SetLikeCount", mock.Anything, replyID, int64(1)).Return(nil)

		_, err := f.service.ToggleLike(context.Background(), targetmodels.KindReply, replyID, user)

		require.NoError(t, err)
		f.replyRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		f := newLikeServiceFixture(false)
		id, _ := uuid.NewV4()

		_, err := f.service.ToggleLike(context.Background(), targetmodels.Kind("event"), id, user)

		assert.ErrorIs(t, err, likesErrors.ErrInvalidTargetType)
	})

	t.Run("rejects missing target", func(t *testing.T) {
		f := newLikeServiceFixture(false)
		postID, _ := uuid.NewV4()
		f.targetRepo.On("Exists", mock.Anything, targetmodels.KindPost, postID).Return(false, nil)

		_, err := f.service.ToggleLike(context.Background(), targetmodels.KindPost, postID, user)

		assert.ErrorIs(t, err, likesErrors.ErrTargetNotFound)
	})

	t.Run("rejects hidden comment target", func(t *testing.T) {
		f := newLikeServiceFixture(false)
		commentID, _ := uuid.NewV4()
		owner, _ := uuid.NewV4()
		comment := &commentmodels.Comment{ObjectId: commentID, OwnerUserId: owner, Status: commentmodels.StatusHidden}
		f.commentRepo.On("FindByID", mock.Anything, commentID).Return(comment, nil)

		_, err := f.service.ToggleLike(context.Background(), targetmodels.KindComment, commentID, user)

		assert.ErrorIs(t, err, likesErrors.ErrTargetNotFound)
	})

	t.Run("rejects anonymous caller", func(t *testing.T) {
		f := newLikeServiceFixture(false)
		id, _ := uuid.NewV4()

		_, err := f.service.ToggleLike(context.Background(), targetmodels.KindGallery, id, nil)

		assert.ErrorIs(t, err, likesErrors.ErrMissingUserContext)
	})
}

func TestGetLikeStatus(t *testing.T) {
	user := testUser()

	t.Run("returns count and liked flag", func(t *testing.T) {
		f := newLikeServiceFixture(false)
		galleryID, _ := uuid.NewV4()
		f.targetRepo.On("Exists", mock.Anything, targetmodels.KindGallery, galleryID).Return(true, nil)
		f.likeRepo.On("CountByTarget", mock.Anything, targetmodels.KindGallery, galleryID).Return(int64(12), nil)
		f.likeRepo.On("Exists", mock.Anything, user.UserID, targetmodels.KindGallery, galleryID).Return(true, nil)

		result, err := f.service.GetLikeStatus(context.Background(), targetmodels.KindGallery, galleryID, user)

		require.NoError(t, err)
		assert.True(t, result.Liked)
		assert.Equal(t, int64(12), result.LikeCount)
	})

	t.Run("anonymous reader gets liked false", func(t *testing.T) {
		f := newLikeServiceFixture(false)
		galleryID, _ := uuid.NewV4()
		f.targetRepo.On("Exists", mock.Anything, targetmodels.KindGallery, galleryID).Return(true, nil)
		f.likeRepo.On("CountByTarget", mock.Anything, targetmodels.KindGallery, galleryID).Return(int64(3), nil)

		result, err := f.service.GetLikeStatus(context.Background(), targetmodels.KindGallery, galleryID, nil)

		require.NoError(t, err)
		assert.False(t, result.Liked)
		assert.Equal(t, int64(3), result.LikeCount)
		f.likeRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
