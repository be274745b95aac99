package util

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ch <-chan string) []string {
	var out []string
	for v := range ch {
		out = append(out, v)
	}
	return out
}

func TestReveal_CharMode(t *testing.T) {
	text := "Hola, ¿qué tal?"
	got := collect(Reveal(context.Background(), text, 0, RevealByChar))

	require.NotEmpty(t, got)
	assert.Equal(t, text, got[len(got)-1])
	assert.Len(t, got, len([]rune(text)))
	for i := 1; i < len(got); i++ {
		assert.True(t, strings.HasPrefix(got[i], got[i-1]))
		assert.Greater(t, len(got[i]), len(got[i-1]))
	}
}

func TestReveal_WordMode(t *testing.T) {
	got := collect(Reveal(context.Background(), "uno dos  tres", 0, RevealByWord))
	assert.Equal(t, []string{"uno ", "uno dos  ", "uno dos  tres"}, got)
}

func TestReveal_EmptyText(t *testing.T) {
	got := collect(Reveal(context.Background(), "", 0, RevealByChar))
	assert.Equal(t, []string{""}, got)
}

func TestReveal_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := Reveal(ctx, strings.Repeat("a", 1000), 10*time.Millisecond, RevealByChar)

	first := <-ch
	assert.Equal(t, "a", first)
	cancel()

	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reveal did not stop after cancel")
	}
}
