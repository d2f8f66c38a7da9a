package jwt

import (
	"idea-incubation-system/config"
	"time"

	"github.com/golang-jwt/jwt"
)

// Payload 签发令牌时携带的用户信息
type Payload struct {
	UID          string `json:"uid"`            // 用户唯一标识
	Role         int    `json:"role"`           // 角色：0 学生 1 校外用户 2 管理员
	IsSuperAdmin bool   `json:"is_super_admin"` // 是否超级管理员
	NickName     string `json:"nick_name"`
}

type Claims struct {
	Payload
	jwt.StandardClaims
}

// CreateToken 生成 JWT 令牌
func CreateToken(payload Payload) string {
	cfg := config.Get().JWT
	claims := Claims{
		Payload: payload,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Unix() + cfg.AccessExpire,
			IssuedAt:  time.Now().Unix(),
			Issuer:    "idea-incubation-system",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		return ""
	}
	return signed
}

// ParseToken 解析并校验 JWT 令牌
func ParseToken(tokenString string) (*Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, false
	}
	return claims, true
}
