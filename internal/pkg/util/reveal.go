package util

import (
	"context"
	"time"
	"unicode"
)

// RevealMode 渐进展示的粒度
type RevealMode string

const (
	RevealByChar RevealMode = "char"
	RevealByWord RevealMode = "word"
)

// Reveal 按粒度逐步产出 text 的前缀，最后一个值恒等于 text。
// ctx 取消后停止产出并关闭通道，不影响调用方的其它逻辑。
func Reveal(ctx context.Context, text string, delay time.Duration, mode RevealMode) <-chan string {
	out := make(chan string)
	cuts := revealCuts(text, mode)

	go func() {
		defer close(out)

		var timer *time.Timer
		if delay > 0 {
			timer = time.NewTimer(delay)
			defer timer.Stop()
		}

		for i, cut := range cuts {
			if i > 0 && timer != nil {
				timer.Reset(delay)
				select {
				case <-ctx.Done():
					return
				case <-timer.C:
				}
			}
			select {
			case <-ctx.Done():
				return
			case out <- text[:cut]:
			}
		}
	}()

	return out
}

// revealCuts 返回每一步前缀的结束下标
func revealCuts(text string, mode RevealMode) []int {
	if text == "" {
		return []int{0}
	}

	var cuts []int
	switch mode {
	case RevealByWord:
		inSpace := false
		for i, r := range text {
			if unicode.IsSpace(r) {
				inSpace = true
			} else if inSpace {
				cuts = append(cuts, i)
				inSpace = false
			}
		}
	default:
		for i := range text {
			if i > 0 {
				cuts = append(cuts, i)
			}
		}
	}
	return append(cuts, len(text))
}
