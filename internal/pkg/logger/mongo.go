package logger

import (
	"context"
	log "log/slog"

	"go.mongodb.org/mongo-driver/event"
)

// NewMongoMonitor 记录 Mongo 命令的耗时与失败
func NewMongoMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			log.DebugContext(ctx, "mongo command succeeded",
				"command", e.CommandName,
				"db", e.DatabaseName,
				"duration", e.Duration,
			)
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			log.WarnContext(ctx, "mongo command failed",
				"command", e.CommandName,
				"db", e.DatabaseName,
				"duration", e.Duration,
				"err", e.Failure,
			)
		},
	}
}
