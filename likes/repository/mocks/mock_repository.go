package mocks

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/alumlink/alumlink-api/likes/models"
	likeRepository "github.com/alumlink/alumlink-api/likes/repository"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

var _ likeRepository.LikeRepository = (*MockLikeRepository)(nil)

func (m *MockLikeRepository) Insert(ctx context.Context, like *models.Like) (bool, error) {
	args := m.Called(ctx, like)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Delete(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, kind, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Exists(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, kind, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) CountByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error) {
	args := m.Called(ctx, kind, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) FindLikedByUser(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, kind, targetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}
