package handler

import (
	"ChatCV/internal/pkg/response"
	"ChatCV/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DownloadHandler struct {
	downloadService service.DownloadService
}

func NewDownloadHandler(downloadService service.DownloadService) *DownloadHandler {
	return &DownloadHandler{downloadService: downloadService}
}

// Download 先计数再返回简历文件，计数失败不影响下载
func (h *DownloadHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	_ = h.downloadService.RecordDownload(ctx)

	doc, err := h.downloadService.OpenCV(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer doc.Reader.Close()

	c.DataFromReader(http.StatusOK, doc.Size, doc.ContentType, doc.Reader, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, doc.FileName),
	})
}
