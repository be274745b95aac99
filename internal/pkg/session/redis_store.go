package session

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisStore 会话序列化为 JSON 存入 redis，过期交给 TTL
type RedisStore struct {
	rdb      redis.UniversalClient
	prefix   string
	ttl      time.Duration
	defaults *Defaults
}

func NewRedisStore(rdb redis.UniversalClient, prefix string, ttl time.Duration, defaults *Defaults) *RedisStore {
	return &RedisStore{
		rdb:      rdb,
		prefix:   prefix,
		ttl:      ttl,
		defaults: defaults,
	}
}

// Load 读取时顺带续期；key 不存在时写入带全部默认值的新会话，并发创建以先写入者为准
func (s *RedisStore) Load(ctx context.Context, key string) (*Session, error) {
	raw, err := s.rdb.GetEx(ctx, s.prefix+key, s.ttl).Bytes()
	if err == nil {
		return s.decode(key, raw)
	}
	if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	sess := newSession(key, s.defaults)
	sess.materialize()
	sess.mu.Lock()
	raw, err = json.Marshal(&sess.st)
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}

	created, err := s.rdb.SetNX(ctx, s.prefix+key, raw, s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if created {
		return sess, nil
	}

	raw, err = s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		return nil, err
	}
	return s.decode(key, raw)
}

func (s *RedisStore) decode(key string, raw []byte) (*Session, error) {
	sess := newSession(key, s.defaults)
	if err := json.Unmarshal(raw, &sess.st); err != nil {
		return nil, err
	}
	sess.st.Key = key
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	sess.touch(time.Now())

	sess.mu.Lock()
	raw, err := json.Marshal(&sess.st)
	sess.mu.Unlock()
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+sess.Key(), raw, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// Sweep redis 依赖 TTL 过期，无需主动清理
func (s *RedisStore) Sweep(context.Context, time.Duration) (int, error) {
	return 0, nil
}
