package job

import (
	"ChatCV/internal/pkg/session"
	"context"
	log "log/slog"
	"time"
)

// SessionSweepJob 清理空闲会话，模拟浏览器会话过期
type SessionSweepJob struct {
	store session.Store
	idle  time.Duration
}

func NewSessionSweepJob(store session.Store, idle time.Duration) *SessionSweepJob {
	return &SessionSweepJob{
		store: store,
		idle:  idle,
	}
}

func (s *SessionSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := s.store.Sweep(ctx, s.idle)
	if err != nil {
		log.Error("session sweep failed", "err", err)
		return
	}
	if count > 0 {
		log.Info("session sweep job finished", "cleaned_count", count)
	}
}
