package api

import (
	"ChatCV/internal/api/middleware"
	"ChatCV/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, allowedOrigins []string, sessionMiddleware gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		chatGroup := apiGroup.Group("/chat")
		chatGroup.Use(sessionMiddleware)
		{
			chatGroup.GET("/session", group.ChatHandler.GetSession)
			chatGroup.POST("/turn", group.ChatHandler.Turn)
		}

		cvGroup := apiGroup.Group("/cv")
		{
			cvGroup.GET("/download", group.DownloadHandler.Download)
		}
	}

	return r
}
