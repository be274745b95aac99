package logger

import (
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 用 slog 接管 gin 的访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "panic recovered", "err", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatus(500)
	}))
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.InfoContext(c.Request.Context(), "http",
			log.String("method", c.Request.Method),
			log.String("path", c.FullPath()),
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(start)),
			log.String("client_ip", c.ClientIP()),
		)
	})
}
