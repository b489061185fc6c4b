package mocks

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/alumlink/alumlink-api/targets/models"
	targetRepository "github.com/alumlink/alumlink-api/targets/repository"
)

// MockTargetRepository is a mock implementation of TargetRepository
type MockTargetRepository struct {
	mock.Mock
}

var _ targetRepository.TargetRepository = (*MockTargetRepository)(nil)

func (m *MockTargetRepository) Exists(ctx context.Context, kind models.Kind, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTargetRepository) SetCounters(ctx context.Context, kind models.Kind, id uuid.UUID, patch models.CounterPatch) error {
	args := m.Called(ctx, kind, id, patch)
	return args.Error(0)
}
