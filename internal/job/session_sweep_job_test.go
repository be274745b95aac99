package job

import (
	"ChatCV/internal/pkg/session"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	session.Store
	idle  time.Duration
	calls int
}

func (s *countingStore) Sweep(_ context.Context, idle time.Duration) (int, error) {
	s.calls++
	s.idle = idle
	return 3, nil
}

func TestSessionSweepJob_Run(t *testing.T) {
	store := &countingStore{}
	NewSessionSweepJob(store, 30*time.Minute).Run()

	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 30*time.Minute, store.idle)
}

func TestSessionSweepJob_MemoryStore(t *testing.T) {
	store := session.NewMemoryStore(nil)
	_, err := store.Load(context.Background(), "k")
	require.NoError(t, err)

	// idle 为 0 时所有会话都视为过期
	time.Sleep(time.Millisecond)
	NewSessionSweepJob(store, 0).Run()
	assert.Zero(t, store.Len())
}
