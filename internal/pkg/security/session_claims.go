package security

import (
	"github.com/golang-jwt/jwt/v5"
)

const Issuer = "ChatCV"

// SessionClaims 会话 cookie 中的声明，Subject 为会话存储 key
type SessionClaims struct {
	jwt.RegisteredClaims
}
