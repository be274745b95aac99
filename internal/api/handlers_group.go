package api

import "ChatCV/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ChatHandler     *handler.ChatHandler
	DownloadHandler *handler.DownloadHandler
}
