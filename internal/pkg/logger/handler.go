package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// teeHandler 将日志分发到多个 Handler
type teeHandler struct {
	handlers []log.Handler
}

func (s *teeHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range s.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (s *teeHandler) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range s.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *teeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	newHandlers := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &teeHandler{handlers: newHandlers}
}

func (s *teeHandler) WithGroup(name string) log.Handler {
	newHandlers := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &teeHandler{handlers: newHandlers}
}

// tracedOnlyHandler 只转发属于某个请求的日志，启动与定时任务日志不外发
type tracedOnlyHandler struct {
	next log.Handler
}

func (s *tracedOnlyHandler) Enabled(ctx context.Context, level log.Level) bool {
	return s.next.Enabled(ctx, level)
}

func (s *tracedOnlyHandler) Handle(ctx context.Context, r log.Record) error {
	if TraceIDFromContext(ctx) == "" {
		return nil
	}
	return s.next.Handle(ctx, r)
}

func (s *tracedOnlyHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &tracedOnlyHandler{next: s.next.WithAttrs(attrs)}
}

func (s *tracedOnlyHandler) WithGroup(name string) log.Handler {
	return &tracedOnlyHandler{next: s.next.WithGroup(name)}
}
