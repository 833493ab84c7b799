package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrScanInProgress = errors.New("a scan is already running for this user")
)

// ScanLock serializes scanner runs per user. The scanner assumes serialized
// access to a user's cursor and transaction window, so the HTTP layer takes
// this lock before invoking it. Different users never contend.
type ScanLock struct {
	mu     sync.Mutex
	active map[uuid.UUID]struct{}
}

// NewScanLock creates an empty lock registry
func NewScanLock() *ScanLock {
	return &ScanLock{
		active: make(map[uuid.UUID]struct{}),
	}
}

// TryLock claims the user's slot, or returns ErrScanInProgress when another
// scan already holds it. Never blocks.
func (l *ScanLock) TryLock(userID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.active[userID]; held {
		return ErrScanInProgress
	}
	l.active[userID] = struct{}{}
	return nil
}

// Unlock releases the user's slot. Releasing an unheld slot is a no-op.
func (l *ScanLock) Unlock(userID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.active, userID)
}
