package service

import (
	"ChatCV/internal/model"
	"ChatCV/internal/pkg/consts"
	"ChatCV/internal/pkg/llm"
	"ChatCV/internal/pkg/session"
	"context"
	log "log/slog"
	"strings"
	"time"
)

type ChatService interface {
	// HandleTurn 处理一条用户输入；模型与存储的失败都不会以 error 返回
	HandleTurn(ctx context.Context, sess *session.Session, question string) (*model.ExchangeResult, error)
}

// ChatOptions MaxQueries 为 0 时不限制提问次数
type ChatOptions struct {
	MaxQueries int
	Location   *time.Location
}

type chatServiceImpl struct {
	chatModel llm.ChatModel
	pricing   *llm.PricingTable
	sink      ExchangeSink
	store     session.Store
	opts      ChatOptions
	now       func() time.Time
}

func NewChatService(chatModel llm.ChatModel, pricing *llm.PricingTable, sink ExchangeSink, store session.Store, opts ChatOptions) ChatService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &chatServiceImpl{
		chatModel: chatModel,
		pricing:   pricing,
		sink:      sink,
		store:     store,
		opts:      opts,
		now:       time.Now,
	}
}

func (s *chatServiceImpl) HandleTurn(ctx context.Context, sess *session.Session, question string) (*model.ExchangeResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrParamInvalid
	}

	// 模型已应答后客户端断开，记录与会话仍需落库
	persistCtx := context.WithoutCancel(ctx)

	unlock := sess.LockTurn()
	defer unlock()
	defer s.save(persistCtx, sess)

	if sess.Halted() {
		return nil, ErrSessionHalted
	}

	if res, limited := s.checkLimit(sess); limited {
		log.InfoContext(ctx, "query limit reached", "session", sess.ID(), "outcome", res.Outcome)
		return res, nil
	}

	sess.AppendMessages(model.UserMessage(question))

	completion, err := s.chatModel.Generate(ctx, sess.Messages())
	if err != nil {
		return s.fallback(ctx, sess, err), nil
	}

	sess.AppendMessages(model.AssistantMessage(completion.Text))

	tokens := completion.TotalTokens
	cost := s.pricing.Cost(tokens, sess.ModelName())
	s.increment(ctx, sess, session.KeyTotalCost, cost)
	queryNum := int(s.increment(ctx, sess, session.KeyQueryNum, 1))
	s.increment(ctx, sess, session.KeyTotalTokens, float64(tokens))

	result := &model.ExchangeResult{
		Text:     completion.Text,
		Tokens:   tokens,
		Cost:     cost,
		QueryNum: queryNum,
		Outcome:  model.TurnAnswered,
	}

	record := (&model.ExchangeRecord{
		SessionID: sess.ID(),
		QueryNum:  queryNum,
		Question:  question,
		Answer:    completion.Text,
		Timestamp: s.now().In(s.opts.Location).Format(consts.TimestampLayout),
		Cost:      cost,
		Tokens:    tokens,
	}).WithProfile(sess.Profile())

	if err = s.sink.Record(persistCtx, record); err != nil {
		log.ErrorContext(ctx, "failed to record exchange", "session", sess.ID(), "query_num", queryNum, "err", err)
		result.StorageErr = err
	}

	return result, nil
}

// checkLimit 达到上限时第一次返回提示语，之后返回结束语
func (s *chatServiceImpl) checkLimit(sess *session.Session) (*model.ExchangeResult, bool) {
	if s.opts.MaxQueries <= 0 {
		return nil, false
	}
	queryNum := sess.QueryNum()
	if queryNum < s.opts.MaxQueries {
		return nil, false
	}

	if !sess.LimitNotified() {
		sess.MarkLimitNotified()
		return &model.ExchangeResult{Text: LimitReachedMessage, QueryNum: queryNum, Outcome: model.TurnLimitReached}, true
	}
	return &model.ExchangeResult{Text: PostLimitMessage, QueryNum: queryNum, Outcome: model.TurnPostLimit}, true
}

// fallback 用固定致歉语补全历史，鉴权失败时终止会话
func (s *chatServiceImpl) fallback(ctx context.Context, sess *session.Session, err error) *model.ExchangeResult {
	kind := llm.Classify(err)
	log.ErrorContext(ctx, "AI大模型请求失败", "session", sess.ID(), "kind", kind.String(), "err", err)

	sess.AppendMessages(model.AssistantMessage(AnswerError))
	if kind.Fatal() {
		sess.Halt()
	}

	return &model.ExchangeResult{
		Text:     AnswerError,
		QueryNum: sess.QueryNum(),
		Outcome:  model.TurnFallback,
		Reason:   kind.String(),
	}
}

func (s *chatServiceImpl) increment(ctx context.Context, sess *session.Session, key string, delta float64) float64 {
	v, err := sess.Increment(key, delta)
	if err != nil {
		log.ErrorContext(ctx, "session increment failed", "key", key, "err", err)
	}
	return v
}

func (s *chatServiceImpl) save(ctx context.Context, sess *session.Session) {
	if err := s.store.Save(ctx, sess); err != nil {
		log.ErrorContext(ctx, "failed to save session", "session", sess.ID(), "err", err)
	}
}
