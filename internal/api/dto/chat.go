package dto

import "ChatCV/internal/model"

// TurnRequest 用户提交的一条消息
type TurnRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
}

// TurnDTO 一轮对话的返回
type TurnDTO struct {
	Text        string  `json:"text"`
	Outcome     string  `json:"outcome"`
	Reason      string  `json:"reason,omitempty"`
	Tokens      int     `json:"tokens"`
	Cost        float64 `json:"cost"`
	QueryNum    int     `json:"queryNum"`
	StorageWarn string  `json:"storageWarn,omitempty"`
}

// SessionDTO 会话概览与可见对话
type SessionDTO struct {
	SessionID   string          `json:"sessionId"`
	QueryNum    int             `json:"queryNum"`
	Model       string          `json:"model"`
	TotalCost   float64         `json:"totalCost"`
	TotalTokens int             `json:"totalTokens"`
	Halted      bool            `json:"halted"`
	Messages    []model.Message `json:"messages"`
}

// StreamEvent SSE 推送的事件
type StreamEvent struct {
	Type    string   `json:"type"`
	Content string   `json:"content"`
	Turn    *TurnDTO `json:"turn,omitempty"`
}
