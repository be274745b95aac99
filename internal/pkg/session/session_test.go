package session

import (
	"ChatCV/internal/model"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() *Defaults {
	return &Defaults{
		ModelName: "gpt-3.5-turbo-1106",
		Seed: func() []model.Message {
			return []model.Message{
				model.SystemMessage("system"),
				model.AssistantMessage("¡Buenos días!"),
				model.AssistantMessage("¿Qué te gustaría saber?"),
			}
		},
	}
}

func TestNewSessionID(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := NewSessionID(4)
		require.Len(t, id, 4)
		for _, r := range id {
			assert.True(t, r >= 'A' && r <= 'Z', "unexpected rune %q in %s", r, id)
		}
	}
}

func TestSession_LazyDefaults(t *testing.T) {
	sess := newSession("k", testDefaults())

	id := sess.ID()
	assert.Len(t, id, 4)
	assert.Equal(t, id, sess.ID(), "id must be stable once created")
	assert.Equal(t, 0, sess.QueryNum())
	assert.Equal(t, "gpt-3.5-turbo-1106", sess.ModelName())
	assert.Zero(t, sess.TotalCost())
	assert.Zero(t, sess.TotalTokens())
	assert.Equal(t, model.UserProfile{}, sess.Profile())

	msgs := sess.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.RoleSystem, msgs[0].Role)

	visible := sess.VisibleMessages()
	require.Len(t, visible, 2)
	for _, m := range visible {
		assert.NotEqual(t, model.RoleSystem, m.Role)
	}
}

func TestSession_MessagesIsCopy(t *testing.T) {
	sess := newSession("k", testDefaults())
	msgs := sess.Messages()
	msgs[0].Content = "changed"

	assert.Equal(t, "system", sess.Messages()[0].Content)
}

func TestSession_AppendMessages(t *testing.T) {
	sess := newSession("k", testDefaults())
	sess.AppendMessages(model.UserMessage("hola"), model.AssistantMessage("buenas"))

	msgs := sess.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, model.RoleSystem, msgs[0].Role)
	assert.Equal(t, "hola", msgs[3].Content)
	assert.Equal(t, "buenas", msgs[4].Content)
}

func TestSession_GetSetIncrement(t *testing.T) {
	sess := newSession("k", testDefaults())

	v, err := sess.Get(KeyQueryNum)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	require.NoError(t, sess.Set(KeyModel, "gpt-4"))
	v, err = sess.Get(KeyModel)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", v)

	n, err := sess.Increment(KeyQueryNum, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(1), n)

	n, err = sess.Increment(KeyTotalTokens, 150)
	require.NoError(t, err)
	assert.Equal(t, float64(150), n)

	cost, err := sess.Increment(KeyTotalCost, 0.0003)
	require.NoError(t, err)
	assert.InDelta(t, 0.0003, cost, 1e-12)
	assert.InDelta(t, 0.0003, sess.TotalCost(), 1e-12)

	require.NoError(t, sess.Set(KeyProfile, model.UserProfile{Nombre: "Ana"}))
	assert.Equal(t, "Ana", sess.Profile().Nombre)
}

func TestSession_GenericAccessErrors(t *testing.T) {
	sess := newSession("k", testDefaults())

	_, err := sess.Get("nope")
	require.ErrorIs(t, err, ErrUnknownKey)

	require.ErrorIs(t, sess.Set(KeyQueryNum, "uno"), ErrBadValue)
	require.ErrorIs(t, sess.Set("nope", 1), ErrUnknownKey)

	_, err = sess.Increment(KeyMessages, 1)
	require.ErrorIs(t, err, ErrNotNumeric)
	_, err = sess.Increment("nope", 1)
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestSession_FlagsAndConcurrentIncrement(t *testing.T) {
	sess := newSession("k", testDefaults())
	assert.False(t, sess.Halted())
	assert.False(t, sess.LimitNotified())
	sess.Halt()
	sess.MarkLimitNotified()
	assert.True(t, sess.Halted())
	assert.True(t, sess.LimitNotified())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = sess.Increment(KeyQueryNum, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, sess.QueryNum())
}
