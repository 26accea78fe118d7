package handlers

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pnotequalnp/thread-master/core"
	"github.com/pnotequalnp/thread-master/models"
	"github.com/pnotequalnp/thread-master/usecases/threads"
)

func newMessageCreate(channelID, messageID string, author *discordgo.User, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        messageID,
			ChannelID: channelID,
			GuildID:   "guild-1",
			Author:    author,
			Content:   content,
		},
	}
}

func setupDiscordEventsHandler(t *testing.T) (*DiscordEventsHandler, *threads.MockThreadsUseCase) {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	useCase := new(threads.MockThreadsUseCase)
	return NewDiscordEventsHandler(session, useCase, 2), useCase
}

func TestNewDiscordEventsHandler_SetsIntents(t *testing.T) {
	handler, _ := setupDiscordEventsHandler(t)

	intents := handler.discordSDKClient.Identify.Intents
	assert.NotZero(t, intents&discordgo.IntentsGuildMessages)
	assert.NotZero(t, intents&discordgo.IntentsMessageContent)
	require.NoError(t, handler.StopBot())
}

func TestNewDiscordEventsHandler_RequiresWorkers(t *testing.T) {
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	assert.Panics(t, func() {
		NewDiscordEventsHandler(session, new(threads.MockThreadsUseCase), 0)
	})
}

func TestHandleMessageCreatedEvent_DispatchesToUseCase(t *testing.T) {
	handler, useCase := setupDiscordEventsHandler(t)

	useCase.On("ProcessMessageEvent", mock.Anything, mock.MatchedBy(func(e models.DiscordMessageEvent) bool {
		return e.ChannelID == 111 && e.MessageID == 222 && e.Content == "Bug: broken" && !e.AuthorBot
	})).Return(nil).Once()

	author := &discordgo.User{ID: "u1", Username: "alice"}
	handler.handleMessageCreatedEvent(nil, newMessageCreate("111", "222", author, "Bug: broken"))

	require.NoError(t, handler.StopBot())
	useCase.AssertExpectations(t)
}

func TestHandleMessageCreatedEvent_UseCaseErrorIsDropped(t *testing.T) {
	handler, useCase := setupDiscordEventsHandler(t)

	failure := &core.ThreadCreationError{ChannelID: 111, MessageID: 222, Err: errors.New("forbidden")}
	useCase.On("ProcessMessageEvent", mock.Anything, mock.AnythingOfType("models.DiscordMessageEvent")).
		Return(failure).Twice()

	author := &discordgo.User{ID: "u1", Username: "alice"}
	handler.handleMessageCreatedEvent(nil, newMessageCreate("111", "222", author, "one"))
	handler.handleMessageCreatedEvent(nil, newMessageCreate("111", "223", author, "two"))

	require.NoError(t, handler.StopBot())
	useCase.AssertNumberOfCalls(t, "ProcessMessageEvent", 2)
}

func TestHandleMessageCreatedEvent_InvalidIDsAreDropped(t *testing.T) {
	handler, useCase := setupDiscordEventsHandler(t)

	handler.handleMessageCreatedEvent(nil, newMessageCreate("general", "222", nil, "text"))

	require.NoError(t, handler.StopBot())
	useCase.AssertNotCalled(t, "ProcessMessageEvent", mock.Anything, mock.Anything)
}

func TestHandleMessageCreatedEvent_AfterStopIsDropped(t *testing.T) {
	handler, useCase := setupDiscordEventsHandler(t)
	require.NoError(t, handler.StopBot())

	assert.NotPanics(t, func() {
		handler.handleMessageCreatedEvent(nil, newMessageCreate("111", "222", nil, "late"))
	})
	useCase.AssertNotCalled(t, "ProcessMessageEvent", mock.Anything, mock.Anything)
	assert.NoError(t, handler.StopBot(), "stopping twice is a no-op")
}

func TestHandleReadyEvent(t *testing.T) {
	handler, useCase := setupDiscordEventsHandler(t)

	useCase.On("ProcessReadyEvent", mock.Anything, models.DiscordReadyEvent{
		SessionID:  "session-1",
		Username:   "thread-master",
		GuildCount: 1,
	}).Return(nil).Once()

	handler.handleReadyEvent(nil, &discordgo.Ready{
		SessionID: "session-1",
		User:      &discordgo.User{Username: "thread-master"},
		Guilds:    []*discordgo.Guild{{ID: "g1"}},
	})

	require.NoError(t, handler.StopBot())
	useCase.AssertExpectations(t)
}

func TestMapToDiscordMessageEvent(t *testing.T) {
	author := &discordgo.User{ID: "u1", Username: "helper-bot", Bot: true}

	event, err := mapToDiscordMessageEvent(newMessageCreate("18446744073709551615", "42", author, "hi"))
	require.NoError(t, err)

	assert.True(t, core.IsValidID(event.EventID))
	assert.Equal(t, "guild-1", event.GuildID)
	assert.Equal(t, uint64(18446744073709551615), event.ChannelID)
	assert.Equal(t, uint64(42), event.MessageID)
	assert.Equal(t, "u1", event.AuthorID)
	assert.Equal(t, "helper-bot", event.AuthorName)
	assert.True(t, event.AuthorBot)
	assert.Equal(t, "hi", event.Content)
}

func TestMapToDiscordMessageEvent_NilAuthor(t *testing.T) {
	event, err := mapToDiscordMessageEvent(newMessageCreate("1", "2", nil, "hi"))
	require.NoError(t, err)
	assert.False(t, event.AuthorBot)
	assert.Empty(t, event.AuthorName)
}

func TestMapToDiscordMessageEvent_Errors(t *testing.T) {
	tests := []struct {
		name  string
		event *discordgo.MessageCreate
	}{
		{"nil event", nil},
		{"nil message", &discordgo.MessageCreate{}},
		{"bad channel", newMessageCreate("abc", "2", nil, "")},
		{"bad message", newMessageCreate("1", "-2", nil, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapToDiscordMessageEvent(tt.event)
			assert.Error(t, err)
		})
	}
}

func TestMapToDiscordReadyEvent_NilUser(t *testing.T) {
	event := mapToDiscordReadyEvent(&discordgo.Ready{SessionID: "s"})
	assert.Equal(t, "s", event.SessionID)
	assert.Empty(t, event.Username)
	assert.Zero(t, event.GuildCount)
}
