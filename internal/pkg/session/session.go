package session

import (
	"ChatCV/internal/model"
	"ChatCV/internal/pkg/consts"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// 会话中可按 key 访问的字段
const (
	KeySessionID   = "id_session"
	KeyQueryNum    = "query_num"
	KeyModel       = "openai_model"
	KeyTotalCost   = "total_cost"
	KeyTotalTokens = "total_tokens"
	KeyMessages    = "messages"
	KeyProfile     = "detalle_usuario"
)

var (
	ErrUnknownKey = errors.New("unknown session key")
	ErrNotNumeric = errors.New("session key is not numeric")
	ErrBadValue   = errors.New("invalid value type for session key")
)

const idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewSessionID 生成 k 位大写字母的会话ID
func NewSessionID(k int) string {
	b := make([]byte, k)
	for i := range b {
		b[i] = idLetters[rand.Intn(len(idLetters))]
	}
	return string(b)
}

// Defaults 字段首次访问时使用的默认值
type Defaults struct {
	ModelName string
	// Seed 生成初始历史：system prompt 加开场白
	Seed func() []model.Message
}

// state 可序列化的会话数据，nil 表示尚未初始化
type state struct {
	Key           string             `json:"key"`
	ID            string             `json:"id_session,omitempty"`
	QueryNum      *int               `json:"query_num,omitempty"`
	Model         *string            `json:"openai_model,omitempty"`
	TotalCost     *float64           `json:"total_cost,omitempty"`
	TotalTokens   *int               `json:"total_tokens,omitempty"`
	Messages      []model.Message    `json:"messages,omitempty"`
	Profile       *model.UserProfile `json:"detalle_usuario,omitempty"`
	LimitNotified bool               `json:"limit_notified,omitempty"`
	Halted        bool               `json:"halted,omitempty"`
	LastActive    time.Time          `json:"last_active"`
}

// Session 单个访客的会话状态，字段惰性初始化
type Session struct {
	mu       sync.Mutex
	turnMu   sync.Mutex
	st       state
	defaults *Defaults
}

func newSession(key string, defaults *Defaults) *Session {
	return &Session{
		st:       state{Key: key, LastActive: time.Now()},
		defaults: defaults,
	}
}

// LockTurn 同一会话的对话轮次串行执行
func (s *Session) LockTurn() (unlock func()) {
	s.turnMu.Lock()
	return s.turnMu.Unlock
}

func (s *Session) Key() string {
	return s.st.Key
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id()
}

func (s *Session) QueryNum() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.queryNum()
}

func (s *Session) ModelName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.model()
}

func (s *Session) TotalCost() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.totalCost()
}

func (s *Session) TotalTokens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.totalTokens()
}

// Messages 返回历史的副本
func (s *Session) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages()
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}

// VisibleMessages 去掉 system 消息后的对话
func (s *Session) VisibleMessages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Message
	for _, m := range s.messages() {
		if m.Role.Visible() {
			out = append(out, m)
		}
	}
	return out
}

// AppendMessages 只追加，不修改已有历史
func (s *Session) AppendMessages(msgs ...model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Messages = append(s.messages(), msgs...)
}

func (s *Session) Profile() model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.profile()
}

func (s *Session) LimitNotified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.LimitNotified
}

func (s *Session) MarkLimitNotified() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.LimitNotified = true
}

func (s *Session) Halted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Halted
}

func (s *Session) Halt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Halted = true
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.LastActive
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.LastActive = now
}

// Get 按 key 读取字段，未初始化时先写入默认值
func (s *Session) Get(key string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case KeySessionID:
		return s.id(), nil
	case KeyQueryNum:
		return *s.queryNum(), nil
	case KeyModel:
		return *s.model(), nil
	case KeyTotalCost:
		return *s.totalCost(), nil
	case KeyTotalTokens:
		return *s.totalTokens(), nil
	case KeyMessages:
		msgs := s.messages()
		out := make([]model.Message, len(msgs))
		copy(out, msgs)
		return out, nil
	case KeyProfile:
		return *s.profile(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set 按 key 覆盖字段
func (s *Session) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bad := fmt.Errorf("%w: %s=%T", ErrBadValue, key, value)
	switch key {
	case KeySessionID:
		v, ok := value.(string)
		if !ok {
			return bad
		}
		s.st.ID = v
	case KeyQueryNum, KeyTotalTokens:
		v, ok := value.(int)
		if !ok {
			return bad
		}
		if key == KeyQueryNum {
			s.st.QueryNum = &v
		} else {
			s.st.TotalTokens = &v
		}
	case KeyModel:
		v, ok := value.(string)
		if !ok {
			return bad
		}
		s.st.Model = &v
	case KeyTotalCost:
		v, ok := value.(float64)
		if !ok {
			return bad
		}
		s.st.TotalCost = &v
	case KeyMessages:
		v, ok := value.([]model.Message)
		if !ok {
			return bad
		}
		s.st.Messages = append([]model.Message(nil), v...)
	case KeyProfile:
		v, ok := value.(model.UserProfile)
		if !ok {
			return bad
		}
		s.st.Profile = &v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// Increment 数值字段加 delta 并返回新值
func (s *Session) Increment(key string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case KeyQueryNum:
		v := s.queryNum()
		*v += int(delta)
		return float64(*v), nil
	case KeyTotalTokens:
		v := s.totalTokens()
		*v += int(delta)
		return float64(*v), nil
	case KeyTotalCost:
		v := s.totalCost()
		*v += delta
		return *v, nil
	case KeySessionID, KeyModel, KeyMessages, KeyProfile:
		return 0, fmt.Errorf("%w: %s", ErrNotNumeric, key)
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// materialize 一次性写入全部默认值，便于首次落库后保持稳定
func (s *Session) materialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id()
	s.queryNum()
	s.model()
	s.totalCost()
	s.totalTokens()
	s.messages()
}

func (s *Session) id() string {
	if s.st.ID == "" {
		s.st.ID = NewSessionID(consts.SessionIDLength)
	}
	return s.st.ID
}

func (s *Session) queryNum() *int {
	if s.st.QueryNum == nil {
		s.st.QueryNum = new(int)
	}
	return s.st.QueryNum
}

func (s *Session) model() *string {
	if s.st.Model == nil {
		name := ""
		if s.defaults != nil {
			name = s.defaults.ModelName
		}
		s.st.Model = &name
	}
	return s.st.Model
}

func (s *Session) totalCost() *float64 {
	if s.st.TotalCost == nil {
		s.st.TotalCost = new(float64)
	}
	return s.st.TotalCost
}

func (s *Session) totalTokens() *int {
	if s.st.TotalTokens == nil {
		s.st.TotalTokens = new(int)
	}
	return s.st.TotalTokens
}

func (s *Session) messages() []model.Message {
	if s.st.Messages == nil {
		s.st.Messages = []model.Message{}
		if s.defaults != nil && s.defaults.Seed != nil {
			s.st.Messages = append(s.st.Messages, s.defaults.Seed()...)
		}
	}
	return s.st.Messages
}

func (s *Session) profile() *model.UserProfile {
	if s.st.Profile == nil {
		s.st.Profile = &model.UserProfile{}
	}
	return s.st.Profile
}
