package models

import "slices"

// ThreadKind is the kind of thread opened on a message
type ThreadKind int

const (
	ThreadKindPublic ThreadKind = iota
)

func (k ThreadKind) String() string {
	switch k {
	case ThreadKindPublic:
		return "public_thread"
	default:
		return "unknown"
	}
}

const (
	DefaultThreadName         = "discussion"
	DefaultAutoArchiveMinutes = 1440
	MaxThreadNameLength       = 100
)

// ThreadOptions is the typed template for a thread creation request.
// It is passed by value so overrides never touch the shared template.
type ThreadOptions struct {
	Name               string
	Kind               ThreadKind
	AutoArchiveMinutes int
}

func DefaultThreadOptions() ThreadOptions {
	return ThreadOptions{
		Name:               DefaultThreadName,
		Kind:               ThreadKindPublic,
		AutoArchiveMinutes: DefaultAutoArchiveMinutes,
	}
}

// WithName returns a copy of the options with Name replaced
func (o ThreadOptions) WithName(name string) ThreadOptions {
	o.Name = name
	return o
}

// ChannelAllowList is the fixed set of channels eligible for automatic threads
type ChannelAllowList struct {
	ids []uint64
}

func NewChannelAllowList(ids []uint64) ChannelAllowList {
	return ChannelAllowList{ids: slices.Clone(ids)}
}

func (l ChannelAllowList) Contains(channelID uint64) bool {
	return slices.Contains(l.ids, channelID)
}

// IDs returns a copy of the configured channel IDs in configuration order
func (l ChannelAllowList) IDs() []uint64 {
	return slices.Clone(l.ids)
}

func (l ChannelAllowList) Len() int {
	return len(l.ids)
}
