package challenge

import (
	"context"
	"sync"
	"time"

	"github.com/axent-pl/selfkey/common"
)

// MemoryReplayChecker remembers presented challenge ids until they expire.
type MemoryReplayChecker struct {
	mu     sync.Mutex
	seen   map[string]time.Time // id -> expiration time
	ticker *time.Ticker
	done   chan struct{}
	stop   sync.Once
}

var _ common.ReplayChecker = (*MemoryReplayChecker)(nil)

// NewMemoryReplayChecker starts a checker that purges expired ids every
// cleanupInterval. Call Stop to release the purge goroutine.
func NewMemoryReplayChecker(cleanupInterval time.Duration) *MemoryReplayChecker {
	rc := &MemoryReplayChecker{
		seen:   make(map[string]time.Time),
		ticker: time.NewTicker(cleanupInterval),
		done:   make(chan struct{}),
	}

	go rc.cleanupLoop()

	return rc
}

func (rc *MemoryReplayChecker) Seen(ctx context.Context, id string, expiresAt time.Time) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if exp, ok := rc.seen[id]; ok {
		if time.Now().Before(exp) {
			return true
		}
		delete(rc.seen, id)
	}

	rc.seen[id] = expiresAt
	return false
}

// Len reports how many ids are currently remembered.
func (rc *MemoryReplayChecker) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.seen)
}

func (rc *MemoryReplayChecker) cleanupLoop() {
	for {
		select {
		case <-rc.ticker.C:
			rc.cleanup()
		case <-rc.done:
			rc.ticker.Stop()
			return
		}
	}
}

func (rc *MemoryReplayChecker) cleanup() {
	now := time.Now()
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for id, exp := range rc.seen {
		if now.After(exp) {
			delete(rc.seen, id)
		}
	}
}

// Stop stops the background cleanup goroutine. It is safe to call twice.
func (rc *MemoryReplayChecker) Stop() {
	rc.stop.Do(func() { close(rc.done) })
}
