package models

// DiscordMessageEvent is a message-create event mapped from the gateway
type DiscordMessageEvent struct {
	EventID    string
	GuildID    string
	ChannelID  uint64
	MessageID  uint64
	AuthorID   string
	AuthorName string
	AuthorBot  bool
	Content    string
}

// DiscordReadyEvent is emitted once the gateway session is established
type DiscordReadyEvent struct {
	SessionID  string
	Username   string
	GuildCount int
}
