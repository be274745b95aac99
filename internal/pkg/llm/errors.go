package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"

	"github.com/tmc/langchaingo/llms/openai"
)

// ErrorKind 模型调用失败的分类
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindAuth
	KindConnectivity
	KindMalformed
	KindUnknown
)

var (
	ErrModelAuth         = errors.New("model authentication failed")
	ErrMalformedResponse = errors.New("model response malformed")
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAuth:
		return "auth"
	case KindConnectivity:
		return "connectivity"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Fatal 鉴权失败后该会话不再接受输入
func (k ErrorKind) Fatal() bool {
	return k == KindAuth
}

// Classify 将 SDK 返回的错误归类
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, ErrModelAuth) {
		return KindAuth
	}
	if errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, openai.ErrEmptyResponse) ||
		errors.Is(err, openai.ErrUnexpectedResponseLength) {
		return KindMalformed
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindMalformed
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return KindConnectivity
	}

	// openai 客户端把非 200 状态码拼进错误信息
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "status code: 401"),
		strings.Contains(msg, "invalid_api_key"),
		strings.Contains(msg, "incorrect api key"):
		return KindAuth
	case strings.Contains(msg, "status code: 400"),
		strings.Contains(msg, "status code: 422"):
		return KindMalformed
	case strings.Contains(msg, "status code: 502"),
		strings.Contains(msg, "status code: 503"),
		strings.Contains(msg, "status code: 504"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"):
		return KindConnectivity
	}
	return KindUnknown
}
