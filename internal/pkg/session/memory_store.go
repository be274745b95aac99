package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 进程内会话存储，重启后丢失
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	defaults *Defaults
	now      func() time.Time
}

func NewMemoryStore(defaults *Defaults) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		defaults: defaults,
		now:      time.Now,
	}
}

// Load 同一个 key 始终返回同一个实例，每次访问都刷新活跃时间
func (s *MemoryStore) Load(_ context.Context, key string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()
	if ok {
		sess.touch(s.now())
		return sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[key]; ok {
		sess.touch(s.now())
		return sess, nil
	}
	sess = newSession(key, s.defaults)
	sess.touch(s.now())
	s.sessions[key] = sess
	return sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	sess.touch(s.now())
	s.mu.Lock()
	s.sessions[sess.Key()] = sess
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context, idle time.Duration) (int, error) {
	deadline := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for key, sess := range s.sessions {
		if sess.LastActive().Before(deadline) {
			delete(s.sessions, key)
			count++
		}
	}
	return count, nil
}

// Len 当前会话数
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
