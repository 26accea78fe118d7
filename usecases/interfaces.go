package usecases

import (
	"context"

	"github.com/pnotequalnp/thread-master/models"
)

// ThreadsUseCaseInterface is what the gateway adapter dispatches events to
type ThreadsUseCaseInterface interface {
	ProcessMessageEvent(ctx context.Context, event models.DiscordMessageEvent) error
	ProcessReadyEvent(ctx context.Context, event models.DiscordReadyEvent) error
}
