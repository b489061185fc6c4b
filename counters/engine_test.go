package counters

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commentMocks "github.com/alumlink/alumlink-api/comments/repository/mocks"
	likeMocks "github.com/alumlink/alumlink-api/likes/repository/mocks"
	replyMocks "github.com/alumlink/alumlink-api/replies/repository/mocks"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
	targetMocks "github.com/alumlink/alumlink-api/targets/repository/mocks"
)

type engineFixture struct {
	commentRepo *commentMocks.MockCommentRepository
	replyRepo   *replyMocks.MockReplyRepository
	likeRepo    *likeMocks.MockLikeRepository
	targetRepo  *targetMocks.MockTargetRepository
	engine      *Engine
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		commentRepo: new(commentMocks.MockCommentRepository),
		replyRepo:   new(replyMocks.MockReplyRepository),
		likeRepo:    new(likeMocks.MockLikeRepository),
		targetRepo:  new(targetMocks.MockTargetRepository),
	}
	f.engine = NewEngine(f.commentRepo, f.replyRepo, f.likeRepo, f.targetRepo)
	return f
}

func TestRecomputeCommentCount(t *testing.T) {
	galleryID, _ := uuid.NewV4()

	t.Run("sums active comments and replies", func(t *testing.T) {
		f := newEngineFixture()
		f.commentRepo.On("CountActiveByTarget", mock.Anything, targetmodels.KindGallery, galleryID).Return(int64(4), nil)
		f.replyRepo.On("CountActiveByTarget", mock.Anything, targetmodels.KindGallery, galleryID).Return(int64(9), nil)
		f.targetRepo.On("SetCounters", mock.Anything, targetmodels.KindGallery, galleryID, targetmodels.CommentCountPatch(13)).Return(nil)

		err := f.engine.RecomputeCommentCount(context.Background(), targetmodels.KindGallery, galleryID)

		require.NoError(t, err)
		f.targetRepo.AssertExpectations(t)
	})

	t.Run("repeated runs write the same value", func(t *testing.T) {
		f := newEngineFixture()
		f.commentRepo.On("CountActiveByTarget", mock.Anything, targetmodels.KindGallery, galleryID).Return(int64(2), nil)
		f.replyRepo.On("CountActiveByTarget", mock.Anything, targetmodels.KindGallery, galleryID).Return(int64(0), nil)
		f.targetRepo.On("SetCounters", mock.Anything, targetmodels.KindGallery, galleryID, targetmodels.CommentCountPatch(2)).Return(nil).Twice()

		require.NoError(t, f.engine.RecomputeCommentCount(context.Background(), targetmodels.KindGallery, galleryID))
		require.NoError(t, f.engine.RecomputeCommentCount(context.Background(), targetmodels.KindGallery, galleryID))

		f.targetRepo.AssertExpectations(t)
	})

	t.Run("propagates count failure", func(t *testing.T) {
		f := newEngineFixture()
		f.commentRepo.On("CountActiveByTarget", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

		err := f.engine.RecomputeCommentCount(context.Background(), targetmodels.KindGallery, galleryID)

		assert.Error(t, err)
		f.targetRepo.AssertNotCalled(t, "SetCounters", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecomputeReplyCount(t *testing.T) {
	commentID, _ := uuid.NewV4()

	f := newEngineFixture()
	f.replyRepo.On("CountActiveDirect", mock.Anything, commentID).Return(int64(6), nil)
	f.commentRepo.On("SetReplyCount", mock.Anything, commentID, int64(6)).Return(nil)

	err := f.engine.RecomputeReplyCount(context.Background(), commentID)

	require.NoError(t, err)
	f.commentRepo.AssertExpectations(t)
}

func TestRecomputeNestedReplyCount(t *testing.T) {
	replyID, _ := uuid.NewV4()

	f := newEngineFixture()
	f.replyRepo.On("CountActiveNested", mock.Anything, replyID).Return(int64(2), nil)
	f.replyRepo.On("SetReplyCount", mock.Anything, replyID, int64(2)).Return(nil)

	err := f.engine.RecomputeNestedReplyCount(context.Background(), replyID)

	require.NoError(t, err)
	f.replyRepo.AssertExpectations(t)
}

func TestRecomputeLikeCount(t *testing.T) {
	t.Run("content kind writes through the stats updater", func(t *testing.T) {
		f := newEngineFixture()
		blogID, _ := uuid.NewV4()
		f.likeRepo.On("CountByTarget", mock.Anything, targetmodels.KindBlog, blogID).Return(int64(21), nil)
		f.targetRepo.On("SetCounters", mock.Anything, targetmodels.KindBlog, blogID, targetmodels.LikeCountPatch(21)).Return(nil)

		require.NoError(t, f.engine.RecomputeLikeCount(context.Background(), targetmodels.KindBlog, blogID))
		f.targetRepo.AssertExpectations(t)
	})

	t.Run("comment kind writes onto the comment row", func(t *testing.T) {
		f := newEngineFixture()
		commentID, _ := uuid.NewV4()
		f.likeRepo.On("CountByTarget", mock.Anything, targetmodels.KindComment, commentID).Return(int64(3), nil)
		f.commentRepo.On("SetLikeCount", mock.Anything, commentID, int64(3)).Return(nil)

		require.NoError(t, f.engine.RecomputeLikeCount(context.Background(), targetmodels.KindComment, commentID))
		f.commentRepo.AssertExpectations(t)
	})

	t.Run("reply kind writes onto the reply row", func(t *testing.T) {
		f := newEngineFixture()
		replyID, _ := uuid.NewV4()
		f.likeRepo.On("CountByTarget", mock.Anything, targetmodels.KindReply, replyID).Return(int64(0), nil)
		f.replyRepo.On("SetLikeCount", mock.Anything, replyID, int64(0)).Return(nil)

		require.NoError(t, f.engine.RecomputeLikeCount(context.Background(), targetmodels.KindReply, replyID))
		f.replyRepo.AssertExpectations(t)
	})
}
