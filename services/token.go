package services

import (
	"fmt"
	"time"

	"campy/utils"

	"github.com/golang-jwt/jwt/v4"
)

// TokenManager issues and verifies HS256 bearer tokens carrying the user id.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    clock
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates a JWT token for the user
func (m *TokenManager) IssueToken(userID string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", utils.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the embedded user id.
func (m *TokenManager) VerifyToken(tokenString string) (string, error) {
	parser := jwt.Parser{}
	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", utils.NewAuthError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", utils.NewAuthError("Invalid token payload")
	}
	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", utils.NewAuthError("Invalid token payload")
	}
	return userID, nil
}
