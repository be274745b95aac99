package llm

import (
	"ChatCV/internal/model"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/sync/semaphore"
)

// Completion 模型返回的文本与用量
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatModel 以完整历史为输入的同步对话模型
type ChatModel interface {
	Generate(ctx context.Context, messages []model.Message) (*Completion, error)
	ModelName() string
}

type chatModelImpl struct {
	client      llms.Model
	model       string
	temperature float64
	timeout     time.Duration
	sem         *semaphore.Weighted
}

// NewChatModel timeout 为 0 时不设超时
func NewChatModel(client llms.Model, modelName string, temperature float64, timeout time.Duration, sem *semaphore.Weighted) ChatModel {
	return &chatModelImpl{
		client:      client,
		model:       modelName,
		temperature: temperature,
		timeout:     timeout,
		sem:         sem,
	}
}

func (s *chatModelImpl) ModelName() string {
	return s.model
}

// Generate 把整段历史原样发送给模型
func (s *chatModelImpl) Generate(ctx context.Context, messages []model.Message) (*Completion, error) {
	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer s.sem.Release(1)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.InfoContext(ctx, "正在请求AI大模型", "model", s.model, "messages", len(messages))
	resp, err := s.client.GenerateContent(ctx, toMessageContent(messages),
		llms.WithModel(s.model),
		llms.WithTemperature(s.temperature),
	)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	choice := resp.Choices[0]
	return &Completion{
		Text:             choice.Content,
		PromptTokens:     infoInt(choice.GenerationInfo, "PromptTokens"),
		CompletionTokens: infoInt(choice.GenerationInfo, "CompletionTokens"),
		TotalTokens:      infoInt(choice.GenerationInfo, "TotalTokens"),
	}, nil
}

func toMessageContent(messages []model.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		out = append(out, llms.TextParts(roleToChatType(m.Role), m.Content))
	}
	return out
}

func roleToChatType(role model.Role) schema.ChatMessageType {
	switch role {
	case model.RoleSystem:
		return schema.ChatMessageTypeSystem
	case model.RoleAssistant:
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageTypeHuman
	}
}
