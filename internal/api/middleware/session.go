package middleware

import (
	"ChatCV/internal/pkg/consts"
	"ChatCV/internal/pkg/response"
	"ChatCV/internal/pkg/security"
	"ChatCV/internal/pkg/session"
	"ChatCV/internal/service"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware 从 cookie 解析会话，缺失或失效时新建并下发 cookie
func SessionMiddleware(issuer *security.TokenIssuer, store session.Store, cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		key := ""
		refresh := true
		if raw, err := c.Cookie(cookieName); err == nil && raw != "" {
			if claims, err := issuer.ValidateToken(raw); err == nil {
				key = claims.Subject
				// 剩余有效期过半时续期
				refresh = claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) < ttl/2
			}
		}
		if key == "" {
			key = uuid.NewString()
		}

		if refresh {
			token, err := issuer.GenerateToken(key)
			if err != nil {
				log.ErrorContext(ctx, "failed to issue session token", "err", err)
				response.Error(c, service.ErrSessionUnavailable)
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, token, int(ttl.Seconds()), "/", "", c.Request.TLS != nil, true)
		}

		sess, err := store.Load(ctx, key)
		if err != nil {
			log.ErrorContext(ctx, "failed to load session", "err", err)
			response.Error(c, service.ErrSessionUnavailable)
			c.Abort()
			return
		}

		c.Set(consts.CtxSessionKey, sess)
		c.Next()
	}
}

// GetSession 取出 SessionMiddleware 注入的会话
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(consts.CtxSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
