package llm

import (
	"ChatCV/internal/api/config"
	log "log/slog"
	"time"

	"github.com/tmc/langchaingo/llms/openai"
)

// InitLLM 创建 OpenAI 客户端并包装为 ChatModel
func InitLLM(cfg config.LLMConfig) (ChatModel, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.ApiKey),
	}
	if cfg.URL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.URL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return nil, err
	}

	SetTextWeight(cfg.MaxConcurrency)
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	log.Info("LLM initialized successfully", "model", cfg.Model)
	return NewChatModel(client, cfg.Model, cfg.Temperature, timeout, TextSem), nil
}
