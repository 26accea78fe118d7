package threads

import (
	"context"
	"time"

	"github.com/pnotequalnp/thread-master/clients"
	"github.com/pnotequalnp/thread-master/core"
	"github.com/pnotequalnp/thread-master/core/log"
	"github.com/pnotequalnp/thread-master/metrics"
	"github.com/pnotequalnp/thread-master/models"
	"github.com/pnotequalnp/thread-master/titles"
)

// ThreadsUseCase opens a public thread on every human message in an allow-listed channel.
// It holds no mutable state; channels and template are fixed at construction.
type ThreadsUseCase struct {
	discordClient clients.DiscordClient
	channels      models.ChannelAllowList
	template      models.ThreadOptions
	recorder      metrics.Recorder
}

func NewThreadsUseCase(
	discordClient clients.DiscordClient,
	channels models.ChannelAllowList,
	template models.ThreadOptions,
	recorder metrics.Recorder,
) *ThreadsUseCase {
	return &ThreadsUseCase{
		discordClient: discordClient,
		channels:      channels,
		template:      template,
		recorder:      recorder,
	}
}

func (u *ThreadsUseCase) ProcessMessageEvent(ctx context.Context, event models.DiscordMessageEvent) error {
	if event.AuthorBot {
		log.Debug("🤖 [%s] Ignoring message %d from bot %s", event.EventID, event.MessageID, event.AuthorName)
		u.recorder.RecordMessage(metrics.OutcomeIgnoredBot)
		return nil
	}

	if !u.channels.Contains(event.ChannelID) {
		log.Debug("🔍 [%s] Channel %d is not allow-listed - ignoring message %d", event.EventID, event.ChannelID, event.MessageID)
		u.recorder.RecordMessage(metrics.OutcomeIgnoredChannel)
		return nil
	}

	opts := u.resolveOptions(event)

	log.Info("🧵 [%s] Creating thread '%s' for message %d in channel %d",
		event.EventID, opts.Name, event.MessageID, event.ChannelID)

	started := time.Now()
	thread, err := u.discordClient.CreatePublicThread(ctx, event.ChannelID, event.MessageID, opts)
	u.recorder.ObserveCreateDuration(time.Since(started).Seconds())
	if err != nil {
		u.recorder.RecordMessage(metrics.OutcomeFailed)
		return &core.ThreadCreationError{
			ChannelID: event.ChannelID,
			MessageID: event.MessageID,
			Err:       err,
		}
	}

	u.recorder.RecordMessage(metrics.OutcomeCreated)
	log.Debug("✅ [%s] Created thread %s ('%s')", event.EventID, thread.ThreadID, thread.ThreadName)
	return nil
}

// resolveOptions returns the template, renamed when the message suggests a title
func (u *ThreadsUseCase) resolveOptions(event models.DiscordMessageEvent) models.ThreadOptions {
	title, ok := titles.DeriveTitle(event.Content).Get()
	if !ok {
		return u.template
	}
	return u.template.WithName(title)
}

func (u *ThreadsUseCase) ProcessReadyEvent(_ context.Context, event models.DiscordReadyEvent) error {
	log.Info("🤖 Connected as %s", event.Username)
	log.Debug("📋 Session %s ready with %d guilds", event.SessionID, event.GuildCount)
	return nil
}
