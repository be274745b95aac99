package logger

import (
	"ChatCV/internal/api/config"
	"context"
	log "log/slog"
	"net"
	"os"
	"strings"
	"time"
)

type ctxKey string

// TraceIDKey 链路ID在 gin.Context 与 context.Context 中的键
const TraceIDKey = "trace_id"

const traceCtxKey ctxKey = TraceIDKey

// traceHandler 从 context 中取出 trace_id 附加到每条日志
type traceHandler struct {
	log.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r log.Record) error {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		r.AddAttrs(log.String(TraceIDKey, traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) log.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// InitLogger 初始化全局 slog，配置了 remote_addr 时把带 trace_id 的日志同时发往远端
func InitLogger(cfg config.LogConfig) {
	opts := &log.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler log.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = log.NewTextHandler(os.Stdout, opts)
	} else {
		handler = log.NewJSONHandler(os.Stdout, opts)
	}

	var remoteErr error
	if cfg.RemoteAddr != "" {
		conn, err := net.DialTimeout("tcp", cfg.RemoteAddr, 3*time.Second)
		if err == nil {
			remote := log.NewJSONHandler(conn, opts).WithAttrs([]log.Attr{
				log.String("service", "chatcv"),
			})
			handler = &teeHandler{handlers: []log.Handler{handler, &tracedOnlyHandler{next: remote}}}
		}
		remoteErr = err
	}

	log.SetDefault(log.New(&traceHandler{Handler: handler}))
	if remoteErr != nil {
		log.Warn("Failed to connect to remote log collector, logging to stdout only", "addr", cfg.RemoteAddr, "err", remoteErr)
	}
}

// WithTraceID 将 trace_id 写入 context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceCtxKey, traceID)
}

// TraceIDFromContext 读取 trace_id，不存在时返回空串
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(traceCtxKey).(string); ok {
		return v
	}
	return ""
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
