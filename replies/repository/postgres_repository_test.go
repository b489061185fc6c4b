package repository

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commentmodels "github.com/alumlink/alumlink-api/comments/models"
	commentRepository "github.com/alumlink/alumlink-api/comments/repository"
	"github.com/alumlink/alumlink-api/internal/database/postgres"
	"github.com/alumlink/alumlink-api/internal/testutil"
	"github.com/alumlink/alumlink-api/replies/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

type replyRepoFixture struct {
	replies  ReplyRepository
	comments commentRepository.CommentRepository
	comment  *commentmodels.Comment
}

func newReplyRepoFixture(t *testing.T) *replyRepoFixture {
	t.Helper()

	db := testutil.RequireTestDB(t)
	testutil.TruncateAll(t, db)
	client := postgres.NewClientFromDB(db)

	f := &replyRepoFixture{
		replies:  NewPostgresReplyRepository(client),
		comments: commentRepository.NewPostgresCommentRepository(client),
	}

	commentID, _ := uuid.NewV4()
	owner, _ := uuid.NewV4()
	galleryID, _ := uuid.NewV4()
	f.comment = &commentmodels.Comment{
		ObjectId:        commentID,
		OwnerUserId:     owner,
		CommentableType: targetmodels.KindGallery,
		CommentableId:   galleryID,
		Text:            "root",
		Status:          commentmodels.StatusActive,
	}
	require.NoError(t, f.comments.Create(context.Background(), f.comment))
	return f
}

func (f *replyRepoFixture) seedReply(t *testing.T, parent *models.Reply, text string, createdDate int64) *models.Reply {
	t.Helper()

	id, err := uuid.NewV4()
	require.NoError(t, err)
	owner, err := uuid.NewV4()
	require.NoError(t, err)

	reply := &models.Reply{
		ObjectId:    id,
		CommentId:   f.comment.ObjectId,
		OwnerUserId: owner,
		Text:        text,
		Status:      models.StatusActive,
		CreatedDate: createdDate,
		LastUpdated: createdDate,
	}
	if parent != nil {
		parentID := parent.ObjectId
		reply.ParentReplyId = &parentID
		reply.Depth = parent.Depth + 1
	}
	require.NoError(t, f.replies.Create(context.Background(), reply))
	return reply
}

func TestReplyRepositoryLevelsAreChronological(t *testing.T) {
	f := newReplyRepoFixture(t)
	ctx := context.Background()

	second := f.seedReply(t, nil, "second", 2000)
	first := f.seedReply(t, nil, "first", 1000)
	nested := f.seedReply(t, first, "nested", 3000)

	direct, err := f.replies.FindVisibleByComment(ctx, f.comment.ObjectId)
	require.NoError(t, err)
	require.Len(t, direct, 2)
	assert.Equal(t, first.ObjectId, direct[0].ObjectId, "direct replies are oldest first")
	assert.Equal(t, second.ObjectId, direct[1].ObjectId)

	children, err := f.replies.FindVisibleByParent(ctx, first.ObjectId)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, nested.ObjectId, children[0].ObjectId)
	assert.Equal(t, 1, children[0].Depth)
}

func TestReplyRepositoryCounts(t *testing.T) {
	f := newReplyRepoFixture(t)
	ctx := context.Background()

	parent := f.seedReply(t, nil, "parent", 1000)
	f.seedReply(t, nil, "sibling", 1100)
	f.seedReply(t, parent, "child a", 1200)
	deleted := f.seedReply(t, parent, "child b", 1300)

	require.NoError(t, f.replies.UpdateStatus(ctx, deleted.ObjectId, models.StatusDeleted))

	direct, err := f.replies.CountActiveDirect(ctx, f.comment.ObjectId)
	require.NoError(t, err)
	assert.Equal(t, int64(2), direct)

	nested, err := f.replies.CountActiveNested(ctx, parent.ObjectId)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nested)

	total, err := f.replies.CountActiveByTarget(ctx, f.comment.CommentableType, f.comment.CommentableId)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestReplyRepositoryTargetCountExcludesHiddenThreads(t *testing.T) {
	f := newReplyRepoFixture(t)
	ctx := context.Background()

	f.seedReply(t, nil, "reply", 1000)

	// Hiding the root comment removes its whole thread from the target's
	// engagement count even though the reply itself stays active.
	require.NoError(t, f.comments.UpdateStatus(ctx, f.comment.ObjectId, commentmodels.StatusHidden))

	total, err := f.replies.CountActiveByTarget(ctx, f.comment.CommentableType, f.comment.CommentableId)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestReplyRepositoryDeletedParentKeepsChildren(t *testing.T) {
	f := newReplyRepoFixture(t)
	ctx := context.Background()

	parent := f.seedReply(t, nil, "parent", 1000)
	child := f.seedReply(t, parent, "child", 1100)
	require.NoError(t, f.replies.SetReplyCount(ctx, parent.ObjectId, 1))

	require.NoError(t, f.replies.UpdateStatus(ctx, parent.ObjectId, models.StatusDeleted))

	// Soft delete keeps the row, so the child's anchor survives
	tombstone, err := f.replies.FindByID(ctx, parent.ObjectId)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, tombstone.Status)

	// The deleted parent still renders: its active child keeps it in the
	// visible set.
	direct, err := f.replies.FindVisibleByComment(ctx, f.comment.ObjectId)
	require.NoError(t, err)
	require.Len(t, direct, 1)
	assert.Equal(t, parent.ObjectId, direct[0].ObjectId)
	assert.Equal(t, models.StatusDeleted, direct[0].Status)

	children, err := f.replies.FindVisibleByParent(ctx, parent.ObjectId)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ObjectId, children[0].ObjectId)
}

func TestReplyRepositoryChildlessDeletedReplyIsInvisible(t *testing.T) {
	f := newReplyRepoFixture(t)
	ctx := context.Background()

	kept := f.seedReply(t, nil, "kept", 1000)
	deleted := f.seedReply(t, nil, "deleted", 1100)

	require.NoError(t, f.replies.UpdateStatus(ctx, deleted.ObjectId, models.StatusDeleted))

	direct, err := f.replies.FindVisibleByComment(ctx, f.comment.ObjectId)
	require.NoError(t, err)
	require.Len(t, direct, 1)
	assert.Equal(t, kept.ObjectId, direct[0].ObjectId)
}
