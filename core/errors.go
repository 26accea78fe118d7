package core

import (
	"errors"
	"fmt"
)

// ConfigError is a fatal startup error tied to a configuration key
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError checks if an error is a ConfigError
func IsConfigError(err error) (*ConfigError, bool) {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}

// ThreadCreationError is returned when Discord rejects or fails a thread creation request.
// It is logged and the event dropped; it never stops the bot.
type ThreadCreationError struct {
	ChannelID uint64
	MessageID uint64
	Err       error
}

func (e *ThreadCreationError) Error() string {
	return fmt.Sprintf("failed to create thread on message %d in channel %d: %v", e.MessageID, e.ChannelID, e.Err)
}

func (e *ThreadCreationError) Unwrap() error {
	return e.Err
}

// IsThreadCreationError checks if an error is a ThreadCreationError
func IsThreadCreationError(err error) (*ThreadCreationError, bool) {
	var threadErr *ThreadCreationError
	if errors.As(err, &threadErr) {
		return threadErr, true
	}
	return nil, false
}
