package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every way a credential can fail verification:
// malformed, wrong signature, expired, or missing the identity claim.
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenVerifier validates the bearer tokens issued by the platform's auth
// service (HS256, "userId" claim). Token issuance itself lives outside this
// subsystem.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify returns the authenticated user identity carried by the token.
func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// Sign mints a token for the given user. The API itself never issues tokens;
// this exists for tooling and tests.
func (v *TokenVerifier) Sign(userID string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(v.secret)
}
