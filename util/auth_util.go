package util

import (
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt"
)

func IsValidReceiver(secret string, tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		slog.Warn("トークンの検証に失敗しました", "error", err)
		return false
	}
	if !token.Valid {
		slog.Warn("トークンの有効期限が切れています")
		return false
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if claims["role"] == "RECEIVER" {
			return true
		}
	} else {
		slog.Warn("クレームの取得に失敗しました")
	}
	return false
}
