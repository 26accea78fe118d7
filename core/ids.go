package core

import (
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/pnotequalnp/thread-master/utils"
)

// NewID generates a new ULID with the given prefix.
// Example: core.NewID("evt") returns "evt_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	utils.AssertInvariant(strings.TrimSpace(prefix) != "", "prefix cannot be empty")

	// ulid.Make uses a process-wide monotonic entropy source and is safe for concurrent use
	return strings.ToLower(strings.TrimSpace(prefix)) + "_" + ulid.Make().String()
}

// IsValidID reports whether id has the prefix_ULID shape produced by NewID.
func IsValidID(id string) bool {
	prefix, ulidPart, found := strings.Cut(id, "_")
	if !found || prefix == "" || strings.Contains(ulidPart, "_") {
		return false
	}

	for _, r := range prefix {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	_, err := ulid.ParseStrict(ulidPart)
	return err == nil
}
