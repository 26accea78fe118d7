package clients

import (
	"context"

	"github.com/pnotequalnp/thread-master/models"
)

// DiscordClient defines the Discord REST operations the bot performs
type DiscordClient interface {
	CreatePublicThread(
		ctx context.Context,
		channelID, messageID uint64,
		opts models.ThreadOptions,
	) (*DiscordThreadResponse, error)
}
