package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer 签发与校验会话 token
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer secret 为空时随机生成，重启后旧会话失效
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
		log.Warn("session secret not configured, using a random one")
	}
	return &TokenIssuer{secret: key, ttl: ttl}
}

// GenerateToken 生成一个新的 JWT Token
func (t *TokenIssuer) GenerateToken(sessionKey string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionKey,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("签名 Token 失败: %w", err)
	}

	return tokenString, nil
}

// ValidateToken 验证 Token 字符串并解析出 Claims
func (t *TokenIssuer) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名方法: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(Issuer))

	if err != nil {
		return nil, fmt.Errorf("token 解析失败: %w", err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("token 无效或已过期")
	}

	return claims, nil
}
