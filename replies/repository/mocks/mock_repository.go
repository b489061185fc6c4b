package mocks

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/alumlink/alumlink-api/replies/models"
	replyRepository "github.com/alumlink/alumlink-api/replies/repository"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// MockReplyRepository is a mock implementation of ReplyRepository
type MockReplyRepository struct {
	mock.Mock
}

var _ replyRepository.ReplyRepository = (*MockReplyRepository)(nil)

func (m *MockReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockReplyRepository) FindByID(ctx context.Context, replyID uuid.UUID) (*models.Reply, error) {
	args := m.Called(ctx, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockReplyRepository) FindVisibleByComment(ctx context.Context, commentID uuid.UUID) ([]models.Reply, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reply), args.Error(1)
}

func (m *MockReplyRepository) FindVisibleByParent(ctx context.Context, parentReplyID uuid.UUID) ([]models.Reply, error) {
	args := m.Called(ctx, parentReplyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reply), args.Error(1)
}

func (m *MockReplyRepository) CountActiveDirect(ctx context.Context, commentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReplyRepository) CountActiveNested(ctx context.Context, parentReplyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, parentReplyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReplyRepository) CountActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error) {
	args := m.Called(ctx, kind, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReplyRepository) UpdateText(ctx context.Context, replyID uuid.UUID, text string) error {
	args := m.Called(ctx, replyID, text)
	return args.Error(0)
}

func (m *MockReplyRepository) UpdateStatus(ctx context.Context, replyID uuid.UUID, status models.Status) error {
	args := m.Called(ctx, replyID, status)
	return args.Error(0)
}

func (m *MockReplyRepository) SetLikeCount(ctx context.Context, replyID uuid.UUID, count int64) error {
	args := m.Called(ctx, replyID, count)
	return args.Error(0)
}

func (m *MockReplyRepository) SetReplyCount(ctx context.Context, replyID uuid.UUID, count int64) error {
	args := m.Called(ctx, replyID, count)
	return args.Error(0)
}
