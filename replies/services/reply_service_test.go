package services

import (
	"context"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commentmodels "github.com/alumlink/alumlink-api/comments/models"
	commentMocks "github.com/alumlink/alumlink-api/comments/repository/mocks"
	"github.com/alumlink/alumlink-api/counters"
	platformconfig "github.com/alumlink/alumlink-api/internal/platform/config"
	"github.com/alumlink/alumlink-api/internal/types"
	likeMocks "github.com/alumlink/alumlink-api/likes/repository/mocks"
	repliesErrors "github.com/alumlink/alumlink-api/replies/errors"
	"github.com/alumlink/alumlink-api/replies/models"
	replyMocks "github.com/alumlink/alumlink-api/replies/repository/mocks"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
	targetMocks "github.com/alumlink/alumlink-api/targets/repository/mocks"
)

type replyServiceFixture struct {
	replyRepo   *replyMocks.MockReplyRepository
	commentRepo *commentMocks.MockCommentRepository
	targetRepo  *targetMocks.MockTargetRepository
	service     ReplyService
}

func newReplyServiceFixture(withEngine bool) *replyServiceFixture {
	f := &replyServiceFixture{
		replyRepo:   new(replyMocks.MockReplyRepository),
		commentRepo: new(commentMocks.MockCommentRepository),
		targetRepo:  new(targetMocks.MockTargetRepository),
	}

	var engine *counters.Engine
	if withEngine {
		engine = counters.NewEngine(f.commentRepo, f.replyRepo, new(likeMocks.MockLikeRepository), f.targetRepo)
	}

	cfg := &platformconfig.Config{
		Engagement: platformconfig.EngagementConfig{
			MaxReplyDepth:    5,
			DefaultTreeDepth: 3,
			MaxTreeDepth:     10,
			DefaultPageSize:  20,
			MaxPageSize:      100,
		},
	}

	f.service = NewReplyService(f.replyRepo, f.commentRepo, engine, nil, cfg)
	return f
}

func testUser() *types.UserContext {
	userID, _ := uuid.NewV4()
	return &types.UserContext{
		UserID:      userID,
		DisplayName: "Priya Nair",
		SystemRole:  types.UserRole,
	}
}

func activeComment() *commentmodels.Comment {
	id, _ := uuid.NewV4()
	targetID, _ := uuid.NewV4()
	owner, _ := uuid.NewV4()
	return &commentmodels.Comment{
		ObjectId:        id,
		OwnerUserId:     owner,
		CommentableType: targetmodels.KindGallery,
		CommentableId:   targetID,
		Text:            "root comment",
		Status:          commentmodels.StatusActive,
	}
}

func TestCreateDirectReply(t *testing.T) {
	user := testUser()

	t.Run("direct reply gets depth zero", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		comment := activeComment()
		f.commentRepo.On("FindByID", mock.Anything, comment.ObjectId).Return(comment, nil)
		f.replyRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Reply")).Return(nil)

		reply, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{
			CommentId: &comment.ObjectId,
			Text:      "  well said  ",
		}, user)

		require.NoError(t, err)
		assert.Equal(t, 0, reply.Depth)
		assert.Equal(t, comment.ObjectId, reply.CommentId)
		assert.Nil(t, reply.ParentReplyId)
		assert.Equal(t, "well said", reply.Text)
		assert.Equal(t, models.StatusActive, reply.Status)
	})

	t.Run("refreshes comment and target counters", func(t *testing.T) {
		f := newReplyServiceFixture(true)
		comment := activeComment()
		f.commentRepo.On("FindByID", mock.Anything, comment.ObjectId).Return(comment, nil)
		f.replyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.replyRepo.On("CountActiveDirect", mock.Anything, comment.ObjectId).Return(int64(4), nil)
		f.commentRepo.On("SetReplyCount", mock.Anything, comment.ObjectId, int64(4)).Return(nil)
		f.commentRepo.On("CountActiveByTarget", mock.Anything, comment.CommentableType, comment.CommentableId).Return(int64(2), nil)
		f.replyRepo.On("CountActiveByTarget", mock.Anything, comment.CommentableType, comment.CommentableId).Return(int64(4), nil)
		f.targetRepo.On("SetCounters", mock.Anything, comment.CommentableType, comment.CommentableId, targetmodels.CommentCountPatch(6)).Return(nil)

		_, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{
			CommentId: &comment.ObjectId,
			Text:      "counted",
		}, user)

		require.NoError(t, err)
		f.commentRepo.AssertExpectations(t)
		f.targetRepo.AssertExpectations(t)
	})

	t.Run("rejects reply to hidden comment", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		comment := activeComment()
		comment.Status = commentmodels.StatusHidden
		f.commentRepo.On("FindByID", mock.Anything, comment.ObjectId).Return(comment, nil)

		_, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{
			CommentId: &comment.ObjectId,
			Text:      "hi",
		}, user)

		assert.ErrorIs(t, err, repliesErrors.ErrCommentNotFound)
	})

	t.Run("rejects oversized text", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		commentID, _ := uuid.NewV4()

		_, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{
			CommentId: &commentID,
			Text:      strings.Repeat("y", 501),
		}, user)

		var validationErr *repliesErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "text", validationErr.Field)
	})

	t.Run("rejects request naming both parents", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		commentID, _ := uuid.NewV4()
		parentID, _ := uuid.NewV4()

		_, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{
			CommentId:     &commentID,
			ParentReplyId: &parentID,
			Text:          "hi",
		}, user)

		assert.ErrorIs(t, err, repliesErrors.ErrAmbiguousParent)
	})

	t.Run("rejects request naming no parent", func(t *testing.T) {
		f := newReplyServiceFixture(false)

		_, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{Text: "hi"}, user)

		assert.ErrorIs(t, err, repliesErrors.ErrAmbiguousParent)
	})
}

func TestCreateNestedReply(t *testing.T) {
	user := testUser()

	makeParent := func(comment *commentmodels.Comment, depth int) *models.Reply {
		id, _ := uuid.NewV4()
		owner, _ := uuid.NewV4()
		return &models.Reply{
			ObjectId:    id,
			CommentId:   comment.ObjectId,
			OwnerUserId: owner,
			Depth:       depth,
			Status:      models.StatusActive,
		}
	}

	t.Run("nested reply inherits root comment and increments depth", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		comment := activeComment()
		parent := makeParent(comment, 2)
		f.replyRepo.On("FindByID", mock.Anything, parent.ObjectId).Return(parent, nil)
		f.commentRepo.On("FindByID", mock.Anything, comment.ObjectId).Return(comment, nil)
		f.replyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		reply, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{
			ParentReplyId: &parent.ObjectId,
			Text:          "deeper",
		}, user)

		require.NoError(t, err)
		assert.Equal(t, 3, reply.Depth)
		assert.Equal(t, comment.ObjectId, reply.CommentId)
		require.NotNil(t, reply.ParentReplyId)
		assert.Equal(t, parent.ObjectId, *reply.ParentReplyId)
	})

	t.Run("rejects reply past the depth limit", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		comment := activeComment()
		parent := makeParent(comment, 5)
		f.replyRepo.On("FindByID", mock.Anything, parent.ObjectId).Return(parent, nil)

		_, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{
			ParentReplyId: &parent.ObjectId,
			Text:          "too deep",
		}, user)

		assert.ErrorIs(t, err, repliesErrors.ErrDepthLimitExceeded)
		f.replyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects deleted parent", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		comment := activeComment()
		parent := makeParent(comment, 0)
		parent.Status = models.StatusDeleted
		f.replyRepo.On("FindByID", mock.Anything, parent.ObjectId).Return(parent, nil)

		_, err := f.service.CreateReply(context.Background(), &models.CreateReplyRequest{
			ParentReplyId: &parent.ObjectId,
			Text:          "hi",
		}, user)

		assert.ErrorIs(t, err, repliesErrors.ErrParentReplyNotFound)
	})
}

func TestUpdateReply(t *testing.T) {
	user := testUser()
	moderator := testUser()
	moderator.SystemRole = types.ModeratorRole

	makeOwned := func(owner uuid.UUID) *models.Reply {
		id, _ := uuid.NewV4()
		commentID, _ := uuid.NewV4()
		return &models.Reply{
			ObjectId:    id,
			CommentId:   commentID,
			OwnerUserId: owner,
			Text:        "original",
			Status:      models.StatusActive,
		}
	}

	t.Run("owner edits text", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		reply := makeOwned(user.UserID)
		newText := "edited"
		f.replyRepo.On("FindByID", mock.Anything, reply.ObjectId).Return(reply, nil)
		f.replyRepo.On("UpdateText", mock.Anything, reply.ObjectId, "edited").Return(nil)

		updated, err := f.service.UpdateReply(context.Background(), reply.ObjectId, &models.UpdateReplyRequest{Text: &newText}, user)

		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
	})

	t.Run("moderator cannot edit text", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		reply := makeOwned(user.UserID)
		newText := "edited"
		f.replyRepo.On("FindByID", mock.Anything, reply.ObjectId).Return(reply, nil)

		_, err := f.service.UpdateReply(context.Background(), reply.ObjectId, &models.UpdateReplyRequest{Text: &newText}, moderator)

		assert.ErrorIs(t, err, repliesErrors.ErrPermissionDenied)
	})

	t.Run("rejects restore of a deleted reply", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		reply := makeOwned(user.UserID)
		reply.Status = models.StatusDeleted
		active := models.StatusActive
		f.replyRepo.On("FindByID", mock.Anything, reply.ObjectId).Return(reply, nil)

		_, err := f.service.UpdateReply(context.Background(), reply.ObjectId, &models.UpdateReplyRequest{Status: &active}, moderator)

		assert.ErrorIs(t, err, repliesErrors.ErrReplyNotFound)
	})
}

func TestDeleteReply(t *testing.T) {
	user := testUser()

	t.Run("owner soft-deletes and counters converge", func(t *testing.T) {
		f := newReplyServiceFixture(true)
		comment := activeComment()
		replyID, _ := uuid.NewV4()
		reply := &models.Reply{
			ObjectId:    replyID,
			CommentId:   comment.ObjectId,
			OwnerUserId: user.UserID,
			Status:      models.StatusActive,
		}
		f.replyRepo.On("FindByID", mock.Anything, replyID).Return(reply, nil)
		f.replyRepo.On("UpdateStatus", mock.Anything, replyID, models.StatusDeleted).Return(nil)
		f.replyRepo.On("CountActiveDirect", mock.Anything, comment.ObjectId).Return(int64(0), nil)
		f.commentRepo.On("SetReplyCount", mock.Anything, comment.ObjectId, int64(0)).Return(nil)
		f.commentRepo.On("FindByID", mock.Anything, comment.ObjectId).Return(comment, nil)
		f.commentRepo.On("CountActiveByTarget", mock.Anything, comment.CommentableType, comment.CommentableId).Return(int64(1), nil)
		f.replyRepo.On("CountActiveByTarget", mock.Anything, comment.CommentableType, comment.CommentableId).Return(int64(0), nil)
		f.targetRepo.On("SetCounters", mock.Anything, comment.CommentableType, comment.CommentableId, targetmodels.CommentCountPatch(1)).Return(nil)

		err := f.service.DeleteReply(context.Background(), replyID, user)

		require.NoError(t, err)
		f.targetRepo.AssertExpectations(t)
	})

	t.Run("stranger denied", func(t *testing.T) {
		f := newReplyServiceFixture(false)
		owner, _ := uuid.NewV4()
		replyID, _ := uuid.NewV4()
		commentID, _ := uuid.NewV4()
		reply := &models.Reply{ObjectId: replyID, CommentId: commentID, OwnerUserId: owner, Status: models.StatusActive}
		f.replyRepo.On("FindByID", mock.Anything, replyID).Return(reply, nil)

		err := f.service.DeleteReply(context.Background(), replyID, user)

		assert.ErrorIs(t, err, repliesErrors.ErrPermissionDenied)
	})
}
