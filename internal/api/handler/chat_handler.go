package handler

import (
	"ChatCV/internal/api/dto"
	"ChatCV/internal/api/middleware"
	"ChatCV/internal/model"
	"ChatCV/internal/pkg/response"
	"ChatCV/internal/pkg/util"
	"ChatCV/internal/service"
	"io"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

const (
	EventDelta = "delta"
	EventDone  = "done"
)

type ChatHandler struct {
	chatService service.ChatService
	revealDelay time.Duration
	revealMode  util.RevealMode
}

func NewChatHandler(chatService service.ChatService, revealDelay time.Duration, revealMode util.RevealMode) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		revealDelay: revealDelay,
		revealMode:  revealMode,
	}
}

// GetSession 返回会话计数与可见的对话记录
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Error(c, service.ErrSessionUnavailable)
		return
	}

	response.Success(c, dto.SessionDTO{
		SessionID:   sess.ID(),
		QueryNum:    sess.QueryNum(),
		Model:       sess.ModelName(),
		TotalCost:   sess.TotalCost(),
		TotalTokens: sess.TotalTokens(),
		Halted:      sess.Halted(),
		Messages:    sess.VisibleMessages(),
	})
}

// Turn 处理一轮对话，stream=true 时以 SSE 逐步推送回复
func (h *ChatHandler) Turn(c *gin.Context) {
	var req dto.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Error(c, service.ErrSessionUnavailable)
		return
	}

	ctx := c.Request.Context()
	result, err := h.chatService.HandleTurn(ctx, sess, req.Question)
	if err != nil {
		response.Error(c, err)
		return
	}

	turn, err := toTurnDTO(result)
	if err != nil {
		log.ErrorContext(ctx, "failed to convert turn result", "err", err)
		response.Error(c, err)
		return
	}

	if c.Query("stream") != "true" {
		response.Success(c, turn)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	prefixes := util.Reveal(ctx, result.Text, h.revealDelay, h.revealMode)
	c.Stream(func(w io.Writer) bool {
		if prefix, ok := <-prefixes; ok {
			c.SSEvent("", dto.StreamEvent{
				Type:    EventDelta,
				Content: prefix,
			})
			return true
		}
		if ctx.Err() == nil {
			c.SSEvent("", dto.StreamEvent{
				Type:    EventDone,
				Content: result.Text,
				Turn:    turn,
			})
		}
		return false
	})
}

func toTurnDTO(result *model.ExchangeResult) (*dto.TurnDTO, error) {
	turn := &dto.TurnDTO{}
	if err := copier.Copy(turn, result); err != nil {
		return nil, err
	}
	turn.Outcome = string(result.Outcome)
	if result.StorageErr != nil {
		turn.StorageWarn = result.StorageErr.Error()
	}
	return turn, nil
}
