package consts

// TimestampLayout 落库时间格式：日-月-年 时:分:秒
const TimestampLayout = "02-01-2006 15:04:05"

// SessionIDLength 会话ID的字母数
const SessionIDLength = 4

const (
	CtxSessionKey = "session"
	MimePDF       = "application/pdf"
)
