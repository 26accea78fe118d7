package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pnotequalnp/thread-master/clients"
	"github.com/pnotequalnp/thread-master/models"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) CreatePublicThread(
	ctx context.Context,
	channelID, messageID uint64,
	opts models.ThreadOptions,
) (*clients.DiscordThreadResponse, error) {
	args := m.Called(ctx, channelID, messageID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordThreadResponse), args.Error(1)
}
