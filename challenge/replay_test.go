package challenge_test

import (
	"context"
	"testing"
	"time"

	"github.com/axent-pl/selfkey/challenge"
	"github.com/stretchr/testify/assert"
)

func TestMemoryReplayChecker_Seen(t *testing.T) {
	rc := challenge.NewMemoryReplayChecker(time.Hour)
	defer rc.Stop()
	ctx := context.Background()

	assert.False(t, rc.Seen(ctx, "a", time.Now().Add(time.Minute)))
	assert.True(t, rc.Seen(ctx, "a", time.Now().Add(time.Minute)))
	assert.False(t, rc.Seen(ctx, "b", time.Now().Add(time.Minute)))

	// an expired entry is treated as unseen and re-recorded
	assert.False(t, rc.Seen(ctx, "c", time.Now().Add(-time.Second)))
	assert.False(t, rc.Seen(ctx, "c", time.Now().Add(time.Minute)))
	assert.True(t, rc.Seen(ctx, "c", time.Now().Add(time.Minute)))
}

func TestMemoryReplayChecker_Cleanup(t *testing.T) {
	rc := challenge.NewMemoryReplayChecker(5 * time.Millisecond)
	defer rc.Stop()

	rc.Seen(context.Background(), "short", time.Now().Add(time.Millisecond))
	rc.Seen(context.Background(), "long", time.Now().Add(time.Hour))

	assert.Eventually(t, func() bool { return rc.Len() == 1 }, time.Second, 5*time.Millisecond)
}

func TestMemoryReplayChecker_StopTwice(t *testing.T) {
	rc := challenge.NewMemoryReplayChecker(time.Minute)
	rc.Stop()
	assert.NotPanics(t, rc.Stop)
}
