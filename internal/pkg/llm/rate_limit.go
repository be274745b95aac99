package llm

import (
	"golang.org/x/sync/semaphore"
)

var (
	TextWeight = int64(5)
	TextSem    = semaphore.NewWeighted(TextWeight)
)

// SetTextWeight 按配置重建文本模型并发上限
func SetTextWeight(weight int64) {
	if weight <= 0 {
		return
	}
	TextWeight = weight
	TextSem = semaphore.NewWeighted(weight)
}
