package model

// TurnOutcome 一轮对话的结果类型
type TurnOutcome string

const (
	TurnAnswered     TurnOutcome = "answered"
	TurnFallback     TurnOutcome = "fallback"
	TurnLimitReached TurnOutcome = "limit_reached"
	TurnPostLimit    TurnOutcome = "post_limit"
)

// ExchangeResult HandleTurn 的返回，供展示与持久化
type ExchangeResult struct {
	Text     string      `json:"text"`
	Tokens   int         `json:"tokens"`
	Cost     float64     `json:"cost"`
	QueryNum int         `json:"queryNum"`
	Outcome  TurnOutcome `json:"outcome"`
	// Reason 仅在 fallback 时填充，对应 llm.ErrorKind
	Reason     string `json:"reason,omitempty"`
	StorageErr error  `json:"-"`
}
