package repository

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumlink/alumlink-api/internal/database/postgres"
	"github.com/alumlink/alumlink-api/internal/testutil"
	"github.com/alumlink/alumlink-api/likes/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

func newLike(t *testing.T, userID uuid.UUID, kind targetmodels.Kind, targetID uuid.UUID) *models.Like {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return &models.Like{
		ObjectId:     id,
		OwnerUserId:  userID,
		LikeableType: kind,
		LikeableId:   targetID,
	}
}

func TestLikeRepositoryToggleSequence(t *testing.T) {
	db := testutil.RequireTestDB(t)
	testutil.TruncateAll(t, db)

	repo := NewPostgresLikeRepository(postgres.NewClientFromDB(db))
	ctx := context.Background()

	userID, _ := uuid.NewV4()
	galleryID, _ := uuid.NewV4()

	created, err := repo.Insert(ctx, newLike(t, userID, targetmodels.KindGallery, galleryID))
	require.NoError(t, err)
	assert.True(t, created)

	// A second insert conflicts on the unique index and reports no creation
	created, err = repo.Insert(ctx, newLike(t, userID, targetmodels.KindGallery, galleryID))
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.CountByTarget(ctx, targetmodels.KindGallery, galleryID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	deleted, err := repo.Delete(ctx, userID, targetmodels.KindGallery, galleryID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, userID, targetmodels.KindGallery, galleryID)
	require.NoError(t, err)
	assert.False(t, deleted)

	count, err = repo.CountByTarget(ctx, targetmodels.KindGallery, galleryID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLikeRepositoryKindsAreIndependent(t *testing.T) {
	db := testutil.RequireTestDB(t)
	testutil.TruncateAll(t, db)

	repo := NewPostgresLikeRepository(postgres.NewClientFromDB(db))
	ctx := context.Background()

	userID, _ := uuid.NewV4()
	// Same uuid serving as both a gallery id and a comment id must yield
	// two distinct likes.
	sharedID, _ := uuid.NewV4()

	created, err := repo.Insert(ctx, newLike(t, userID, targetmodels.KindGallery, sharedID))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Insert(ctx, newLike(t, userID, targetmodels.KindComment, sharedID))
	require.NoError(t, err)
	assert.True(t, created)

	exists, err := repo.Exists(ctx, userID, targetmodels.KindGallery, sharedID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, userID, targetmodels.KindReply, sharedID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLikeRepositoryFindLikedByUser(t *testing.T) {
	db := testutil.RequireTestDB(t)
	testutil.TruncateAll(t, db)

	repo := NewPostgresLikeRepository(postgres.NewClientFromDB(db))
	ctx := context.Background()

	userID, _ := uuid.NewV4()
	otherUser, _ := uuid.NewV4()

	likedID, _ := uuid.NewV4()
	unlikedID, _ := uuid.NewV4()
	otherLikedID, _ := uuid.NewV4()

	_, err := repo.Insert(ctx, newLike(t, userID, targetmodels.KindComment, likedID))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newLike(t, otherUser, targetmodels.KindComment, otherLikedID))
	require.NoError(t, err)

	liked, err := repo.FindLikedByUser(ctx, userID, targetmodels.KindComment, []uuid.UUID{likedID, unlikedID, otherLikedID})
	require.NoError(t, err)
	assert.True(t, liked[likedID])
	assert.False(t, liked[unlikedID])
	assert.False(t, liked[otherLikedID])

	empty, err := repo.FindLikedByUser(ctx, userID, targetmodels.KindComment, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
