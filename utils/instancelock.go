package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// InstanceLock keeps a second bot process from handling the same channels.
// Two processes sharing a token would each open a thread on every message.
type InstanceLock struct {
	lockFile *flock.Flock
	lockPath string
}

// NewInstanceLock prepares a lock at lockPath, creating its parent directory
func NewInstanceLock(lockPath string) (*InstanceLock, error) {
	AssertInvariant(lockPath != "", "lock path cannot be empty")

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	return &InstanceLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock attempts to acquire the lock without blocking
func (l *InstanceLock) TryLock() error {
	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another thread-master instance already holds %s", l.lockPath)
	}

	return nil
}

// Unlock releases the lock and removes the lock file
func (l *InstanceLock) Unlock() error {
	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	return nil
}

func (l *InstanceLock) Path() string {
	return l.lockPath
}
