package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pnotequalnp/thread-master/core"
	"github.com/pnotequalnp/thread-master/core/log"
	"github.com/pnotequalnp/thread-master/models"
)

const (
	EnvDiscordToken = "DISCORD_TOKEN"
	EnvChannelIDs   = "THREAD_CHANNEL_IDS"
	EnvWorkers      = "THREAD_WORKERS"
	EnvMetricsAddr  = "METRICS_ADDR"
	EnvLockFile     = "THREAD_LOCK_FILE"

	DefaultWorkers = 4
)

var errNotSet = errors.New("not set")

type AppConfig struct {
	Token       string
	Channels    models.ChannelAllowList
	Thread      models.ThreadOptions
	Workers     int
	MetricsAddr string // Optional, metrics endpoint disabled when empty
	LockFile    string // Optional, single-instance lock disabled when empty
}

// LoadOptions carries the command-line inputs to LoadConfig
type LoadOptions struct {
	TokenFile string
	EnvFile   string
}

func LoadConfig(opts LoadOptions) (*AppConfig, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			log.Warn("⚠️ Could not load %s file, continuing with system env vars", opts.EnvFile)
		}
	}

	token, err := loadToken(opts.TokenFile)
	if err != nil {
		return nil, err
	}

	channels, err := loadChannels()
	if err != nil {
		return nil, err
	}

	workers, err := getEnvInt(EnvWorkers, DefaultWorkers)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, &core.ConfigError{Key: EnvWorkers, Err: fmt.Errorf("must be at least 1, got %d", workers)}
	}

	config := &AppConfig{
		Token:       token,
		Channels:    channels,
		Thread:      models.DefaultThreadOptions(),
		Workers:     workers,
		MetricsAddr: strings.TrimSpace(os.Getenv(EnvMetricsAddr)),
		LockFile:    strings.TrimSpace(os.Getenv(EnvLockFile)),
	}

	log.Info("✅ Using channel IDs from environment: %v", channels.IDs())
	if config.MetricsAddr == "" {
		log.Info("⚠️ %s not set - metrics endpoint disabled", EnvMetricsAddr)
	}

	return config, nil
}

// loadToken prefers a readable, non-empty token file and falls back to DISCORD_TOKEN
func loadToken(tokenFile string) (string, error) {
	if tokenFile != "" {
		contents, err := os.ReadFile(tokenFile)
		if err == nil && strings.TrimSpace(string(contents)) != "" {
			log.Info("🔑 Using token from file")
			return strings.TrimSpace(string(contents)), nil
		}
	}

	log.Info("🔑 No valid token file given, reading from environment")
	token := strings.TrimSpace(os.Getenv(EnvDiscordToken))
	if token == "" {
		return "", &core.ConfigError{
			Key: EnvDiscordToken,
			Err: fmt.Errorf("expected a token file or a token in the environment: %w", errNotSet),
		}
	}
	return token, nil
}

func loadChannels() (models.ChannelAllowList, error) {
	raw, ok := os.LookupEnv(EnvChannelIDs)
	if !ok {
		return models.ChannelAllowList{}, &core.ConfigError{
			Key: EnvChannelIDs,
			Err: fmt.Errorf("expected a list of channel IDs in the environment: %w", errNotSet),
		}
	}

	ids, err := ParseChannelIDs(raw)
	if err != nil {
		return models.ChannelAllowList{}, &core.ConfigError{Key: EnvChannelIDs, Err: err}
	}
	return models.NewChannelAllowList(ids), nil
}

// ParseChannelIDs parses a comma-separated list of channel IDs.
// Every entry must be a uint64 once trimmed; empty entries are rejected.
func ParseChannelIDs(raw string) ([]uint64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for i, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse channel ID list entry %d (%q): %w", i, part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, &core.ConfigError{Key: key, Err: err}
	}
	return parsed, nil
}
