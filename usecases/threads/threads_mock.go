package threads

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pnotequalnp/thread-master/models"
)

// MockThreadsUseCase implements usecases.ThreadsUseCaseInterface for testing
type MockThreadsUseCase struct {
	mock.Mock
}

func (m *MockThreadsUseCase) ProcessMessageEvent(ctx context.Context, event models.DiscordMessageEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockThreadsUseCase) ProcessReadyEvent(ctx context.Context, event models.DiscordReadyEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
