package clients

// DiscordThreadResponse represents the response from creating a Discord thread
type DiscordThreadResponse struct {
	ThreadID   string
	ThreadName string
}
