package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/pnotequalnp/thread-master/clients"
	"github.com/pnotequalnp/thread-master/models"
)

// DiscordClient implements the clients.DiscordClient interface on top of a discordgo session
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a Discord REST client sharing the gateway session's token and rate limiter
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

// CreatePublicThread opens a thread on an existing message
func (c *DiscordClient) CreatePublicThread(
	ctx context.Context,
	channelID, messageID uint64,
	opts models.ThreadOptions,
) (*clients.DiscordThreadResponse, error) {
	data, err := toThreadStart(opts)
	if err != nil {
		return nil, err
	}

	thread, err := c.session.MessageThreadStartComplex(
		strconv.FormatUint(channelID, 10),
		strconv.FormatUint(messageID, 10),
		data,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start thread: %w", err)
	}
	if thread == nil {
		return nil, fmt.Errorf("discord returned no thread")
	}

	return &clients.DiscordThreadResponse{
		ThreadID:   thread.ID,
		ThreadName: thread.Name,
	}, nil
}

// toThreadStart converts typed options to the discordgo request body
func toThreadStart(opts models.ThreadOptions) (*discordgo.ThreadStart, error) {
	var channelType discordgo.ChannelType
	switch opts.Kind {
	case models.ThreadKindPublic:
		channelType = discordgo.ChannelTypeGuildPublicThread
	default:
		return nil, fmt.Errorf("unsupported thread kind %s", opts.Kind)
	}

	return &discordgo.ThreadStart{
		Name:                opts.Name,
		AutoArchiveDuration: opts.AutoArchiveMinutes,
		Type:                channelType,
	}, nil
}
