package llm

import (
	"ChatCV/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/sync/semaphore"
)

type fakeLLM struct {
	got  []llms.MessageContent
	opts llms.CallOptions
	resp *llms.ContentResponse
	err  error
}

func (f *fakeLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.got = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestChatModel_Generate(t *testing.T) {
	fake := &fakeLLM{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content: "Sergio es ingeniero.",
		GenerationInfo: map[string]any{
			"PromptTokens":     120,
			"CompletionTokens": 8,
			"TotalTokens":      128,
		},
	}}}}
	m := NewChatModel(fake, "gpt-3.5-turbo-1106", 0.1, 0, semaphore.NewWeighted(1))

	history := []model.Message{
		model.SystemMessage("prompt"),
		model.AssistantMessage("hola"),
		model.UserMessage("¿Quién es Sergio?"),
	}
	out, err := m.Generate(context.Background(), history)
	require.NoError(t, err)

	assert.Equal(t, "Sergio es ingeniero.", out.Text)
	assert.Equal(t, 120, out.PromptTokens)
	assert.Equal(t, 8, out.CompletionTokens)
	assert.Equal(t, 128, out.TotalTokens)

	require.Len(t, fake.got, 3)
	assert.Equal(t, schema.ChatMessageTypeSystem, fake.got[0].Role)
	assert.Equal(t, schema.ChatMessageTypeAI, fake.got[1].Role)
	assert.Equal(t, schema.ChatMessageTypeHuman, fake.got[2].Role)
	assert.Equal(t, "gpt-3.5-turbo-1106", fake.opts.Model)
	assert.InDelta(t, 0.1, fake.opts.Temperature, 1e-9)
}

func TestChatModel_GenerateErrors(t *testing.T) {
	m := NewChatModel(&fakeLLM{resp: &llms.ContentResponse{}}, "gpt-4", 0, 0, nil)
	_, err := m.Generate(context.Background(), nil)
	require.ErrorIs(t, err, ErrMalformedResponse)

	boom := errors.New("boom")
	m = NewChatModel(&fakeLLM{err: boom}, "gpt-4", 0, 0, nil)
	_, err = m.Generate(context.Background(), nil)
	require.ErrorIs(t, err, boom)
}

func TestChatModel_SemaphoreRespectsContext(t *testing.T) {
	sem := semaphore.NewWeighted(1)
	require.True(t, sem.TryAcquire(1))

	m := NewChatModel(&fakeLLM{}, "gpt-4", 0, 0, sem)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Generate(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}
