package api

import (
	"ChatCV/internal/api/handler"
	"ChatCV/internal/api/middleware"
	"ChatCV/internal/model"
	"ChatCV/internal/pkg/llm"
	"ChatCV/internal/pkg/security"
	"ChatCV/internal/pkg/session"
	"ChatCV/internal/pkg/util"
	"ChatCV/internal/service"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "chatcv_session"

type echoModel struct{}

func (echoModel) Generate(_ context.Context, messages []model.Message) (*llm.Completion, error) {
	last := messages[len(messages)-1]
	return &llm.Completion{Text: "Respuesta a: " + last.Content, TotalTokens: 10}, nil
}

func (echoModel) ModelName() string {
	return "gpt-3.5-turbo-1106"
}

type memSink struct {
	mu      sync.Mutex
	records []*model.ExchangeRecord
}

func (s *memSink) Record(_ context.Context, record *model.ExchangeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

type memCounter struct {
	mu    sync.Mutex
	count int
	err   error
}

func (c *memCounter) Increment(context.Context, time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.count++
	return nil
}

// gin 的 Stream 需要 CloseNotifier
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	router  *gin.Engine
	sink    *memSink
	counter *memCounter
}

func testSessionDefaults() *session.Defaults {
	return &session.Defaults{
		ModelName: "gpt-3.5-turbo-1106",
		Seed: func() []model.Message {
			return []model.Message{
				model.SystemMessage("prompt"),
				model.AssistantMessage("¡Buenas! Mi nombre es Renardo"),
				model.AssistantMessage("¿Qué te gustaría saber sobre Sergio?"),
			}
		},
	}
}

func newTestApp(t *testing.T, cvPath string) *testApp {
	return newTestAppWithStore(t, cvPath, session.NewMemoryStore(testSessionDefaults()))
}

func newTestAppWithStore(t *testing.T, cvPath string, store session.Store) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sink := &memSink{}
	counter := &memCounter{}

	chatService := service.NewChatService(echoModel{}, llm.NewPricingTable(nil), sink, store, service.ChatOptions{MaxQueries: 1})
	downloadService := service.NewDownloadService(counter, service.NewFileCVSource(cvPath, "cv.pdf"), nil)

	group := &HandlersGroup{
		ChatHandler:     handler.NewChatHandler(chatService, 0, util.RevealByWord),
		DownloadHandler: handler.NewDownloadHandler(downloadService),
	}
	issuer := security.NewTokenIssuer("test-secret", time.Hour)
	router := SetupRouter(group, nil, middleware.SessionMiddleware(issuer, store, cookieName, time.Hour))

	return &testApp{router: router, sink: sink, counter: counter}
}

func (a *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	a.router.ServeHTTP(w, req)
	return w.ResponseRecorder
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestPing(t *testing.T) {
	app := newTestApp(t, "")
	w := app.do(t, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestChatFlow(t *testing.T) {
	app := newTestApp(t, "")

	w := app.do(t, http.MethodGet, "/api/chat/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)

	var sess struct {
		SessionID string          `json:"sessionId"`
		QueryNum  int             `json:"queryNum"`
		Messages  []model.Message `json:"messages"`
	}
	env := decode(t, w, &sess)
	assert.Equal(t, 200, env.Code)
	assert.Len(t, sess.SessionID, 4)
	assert.Len(t, sess.Messages, 2, "system prompt must not be exposed")

	w = app.do(t, http.MethodPost, "/api/chat/turn", map[string]string{"question": "¿Quién es Sergio?"}, cookie)
	var turn struct {
		Text     string `json:"text"`
		Outcome  string `json:"outcome"`
		Tokens   int    `json:"tokens"`
		QueryNum int    `json:"queryNum"`
	}
	env = decode(t, w, &turn)
	require.Equal(t, 200, env.Code)
	assert.Equal(t, "Respuesta a: ¿Quién es Sergio?", turn.Text)
	assert.Equal(t, "answered", turn.Outcome)
	assert.Equal(t, 10, turn.Tokens)
	assert.Equal(t, 1, turn.QueryNum)

	w = app.do(t, http.MethodPost, "/api/chat/turn", map[string]string{"question": "¿Y más?"}, cookie)
	env = decode(t, w, &turn)
	require.Equal(t, 200, env.Code)
	assert.Equal(t, "limit_reached", turn.Outcome)
	assert.Equal(t, service.LimitReachedMessage, turn.Text)

	w = app.do(t, http.MethodGet, "/api/chat/session", nil, cookie)
	decode(t, w, &sess)
	assert.Equal(t, 1, sess.QueryNum)
	assert.Len(t, sess.Messages, 4)
	require.Len(t, app.sink.records, 1)
	assert.Equal(t, sess.SessionID, app.sink.records[0].SessionID)
}

func TestTurn_InvalidBody(t *testing.T) {
	app := newTestApp(t, "")

	w := app.do(t, http.MethodPost, "/api/chat/turn", map[string]string{"question": ""})
	env := decode(t, w, nil)
	assert.Equal(t, service.BadRequest, env.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/turn", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	env = decode(t, rec, nil)
	assert.Equal(t, service.BadRequest, env.Code)
}

func TestTurn_Stream(t *testing.T) {
	app := newTestApp(t, "")

	w := app.do(t, http.MethodPost, "/api/chat/turn?stream=true", map[string]string{"question": "hola"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Contains(t, body, `"type":"delta"`)
	assert.Contains(t, body, `"type":"done"`)
	assert.Contains(t, body, "Respuesta a: hola")
	assert.Less(t, strings.Index(body, `"type":"delta"`), strings.Index(body, `"type":"done"`))
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 cv"), 0o644))
	app := newTestApp(t, path)

	w := app.do(t, http.MethodGet, "/api/cv/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cv.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4 cv", w.Body.String())

	app.do(t, http.MethodGet, "/api/cv/download", nil)
	assert.Equal(t, 2, app.counter.count)
}

func TestDownload_CounterFailureStillServes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 cv"), 0o644))
	app := newTestApp(t, path)
	app.counter.err = errors.New("mongo down")

	w := app.do(t, http.MethodGet, "/api/cv/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 cv", w.Body.String())
}

func TestDownload_MissingFile(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "nope.pdf"))

	w := app.do(t, http.MethodGet, "/api/cv/download", nil)
	env := decode(t, w, nil)
	assert.Equal(t, service.NotFound, env.Code)
	assert.Equal(t, 1, app.counter.count)
}

func TestChatFlow_RedisSessionStableBeforeFirstTurn(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	app := newTestAppWithStore(t, "", session.NewRedisStore(rdb, "chatcv:session:", time.Hour, testSessionDefaults()))

	type sessionView struct {
		SessionID string          `json:"sessionId"`
		Messages  []model.Message `json:"messages"`
	}

	w := app.do(t, http.MethodGet, "/api/chat/session", nil)
	cookie := sessionCookie(t, w)
	var first sessionView
	decode(t, w, &first)

	var second sessionView
	decode(t, app.do(t, http.MethodGet, "/api/chat/session", nil, cookie), &second)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, first.Messages, second.Messages)

	w = app.do(t, http.MethodPost, "/api/chat/turn", map[string]string{"question": "hola"}, cookie)
	env := decode(t, w, nil)
	require.Equal(t, 200, env.Code)

	app.sink.mu.Lock()
	defer app.sink.mu.Unlock()
	require.Len(t, app.sink.records, 1)
	assert.Equal(t, first.SessionID, app.sink.records[0].SessionID)
}
