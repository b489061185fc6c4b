package mocks

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/alumlink/alumlink-api/comments/models"
	commentRepository "github.com/alumlink/alumlink-api/comments/repository"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

var _ commentRepository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, sort models.SortOrder, limit, offset int) ([]models.Comment, error) {
	args := m.Called(ctx, kind, targetID, sort, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error) {
	args := m.Called(ctx, kind, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) UpdateText(ctx context.Context, commentID uuid.UUID, text string) error {
	args := m.Called(ctx, commentID, text)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateStatus(ctx context.Context, commentID uuid.UUID, status models.Status) error {
	args := m.Called(ctx, commentID, status)
	return args.Error(0)
}

func (m *MockCommentRepository) SetLikeCount(ctx context.Context, commentID uuid.UUID, count int64) error {
	args := m.Called(ctx, commentID, count)
	return args.Error(0)
}

func (m *MockCommentRepository) SetReplyCount(ctx context.Context, commentID uuid.UUID, count int64) error {
	args := m.Called(ctx, commentID, count)
	return args.Error(0)
}
