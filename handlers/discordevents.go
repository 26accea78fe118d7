package handlers

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"

	"github.com/pnotequalnp/thread-master/core"
	"github.com/pnotequalnp/thread-master/core/log"
	"github.com/pnotequalnp/thread-master/models"
	"github.com/pnotequalnp/thread-master/usecases"
	"github.com/pnotequalnp/thread-master/utils"
)

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	threadsUseCase   usecases.ThreadsUseCaseInterface
	workerPool       *workerpool.WorkerPool
	// guards Submit against a concurrent StopWait closing the task queue
	poolMu   sync.RWMutex
	stopOnce sync.Once
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	threadsUseCase usecases.ThreadsUseCaseInterface,
	workers int,
) *DiscordEventsHandler {
	utils.AssertInvariant(workers > 0, "worker count must be positive")

	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		threadsUseCase:   threadsUseCase,
		workerPool:       workerpool.New(workers),
	}

	// Register event handlers
	session.AddHandler(handler.handleMessageCreatedEvent)
	session.AddHandler(handler.handleReadyEvent)

	// Message content is a privileged intent; titles cannot be derived without it
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Info("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot closes the Discord connection and waits for queued events to finish
func (h *DiscordEventsHandler) StopBot() error {
	var err error
	h.stopOnce.Do(func() {
		if closeErr := h.discordSDKClient.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close Discord session: %w", closeErr)
		}

		h.poolMu.Lock()
		defer h.poolMu.Unlock()
		h.workerPool.StopWait()
		log.Info("✅ All queued Discord events processed")
	})
	return err
}

// handleMessageCreatedEvent maps the event and queues it on the worker pool
func (h *DiscordEventsHandler) handleMessageCreatedEvent(_ *discordgo.Session, m *discordgo.MessageCreate) {
	messageEvent, err := mapToDiscordMessageEvent(m)
	if err != nil {
		log.Error("❌ Failed to map Discord message event: %v", err)
		return
	}

	log.Debug("📨 [%s] Discord message %d received from %s in channel %d",
		messageEvent.EventID, messageEvent.MessageID, messageEvent.AuthorName, messageEvent.ChannelID)

	h.dispatch(messageEvent)
}

func (h *DiscordEventsHandler) dispatch(event models.DiscordMessageEvent) {
	h.poolMu.RLock()
	defer h.poolMu.RUnlock()

	if h.workerPool.Stopped() {
		log.Warn("⚠️ [%s] Shutting down - dropping message %d", event.EventID, event.MessageID)
		return
	}

	h.workerPool.Submit(func() {
		if err := h.threadsUseCase.ProcessMessageEvent(context.Background(), event); err != nil {
			log.Error("❌ [%s] Error creating thread: %v", event.EventID, err)
		}
	})
}

func (h *DiscordEventsHandler) handleReadyEvent(_ *discordgo.Session, r *discordgo.Ready) {
	if err := h.threadsUseCase.ProcessReadyEvent(context.Background(), mapToDiscordReadyEvent(r)); err != nil {
		log.Error("❌ Failed to process Discord ready event: %v", err)
	}
}

// mapToDiscordMessageEvent maps a Discord SDK message event to our domain model
func mapToDiscordMessageEvent(m *discordgo.MessageCreate) (models.DiscordMessageEvent, error) {
	if m == nil || m.Message == nil {
		return models.DiscordMessageEvent{}, fmt.Errorf("message event has no message")
	}

	channelID, err := strconv.ParseUint(m.ChannelID, 10, 64)
	if err != nil {
		return models.DiscordMessageEvent{}, fmt.Errorf("invalid channel ID %q: %w", m.ChannelID, err)
	}

	messageID, err := strconv.ParseUint(m.ID, 10, 64)
	if err != nil {
		return models.DiscordMessageEvent{}, fmt.Errorf("invalid message ID %q: %w", m.ID, err)
	}

	event := models.DiscordMessageEvent{
		EventID:   core.NewID("evt"),
		GuildID:   m.GuildID,
		ChannelID: channelID,
		MessageID: messageID,
		Content:   m.Content,
	}
	if m.Author != nil {
		event.AuthorID = m.Author.ID
		event.AuthorName = m.Author.Username
		event.AuthorBot = m.Author.Bot
	}
	return event, nil
}

func mapToDiscordReadyEvent(r *discordgo.Ready) models.DiscordReadyEvent {
	event := models.DiscordReadyEvent{
		SessionID:  r.SessionID,
		GuildCount: len(r.Guilds),
	}
	if r.User != nil {
		event.Username = r.User.Username
	}
	return event
}
