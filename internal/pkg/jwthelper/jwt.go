package jwthelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

var ErrUserAgentMismatch = errors.New("token was issued to another user agent")

// MemberClaims identifies the member a token was issued to. The token is only
// valid for the user agent that requested it.
type MemberClaims struct {
	jwt.RegisteredClaims
	MemberID  uint   `json:"member_id"`
	UserAgent string `json:"user_agent"`
}

func GenerateToken(signingKey []byte, memberID uint, userAgent string) (string, error) {
	now := time.Now()
	claims := MemberClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		MemberID:  memberID,
		UserAgent: userAgent,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature, the expiry and the user agent of raw.
func ParseToken(signingKey []byte, raw, userAgent string) (*MemberClaims, error) {
	claims := &MemberClaims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("jwt.ParseWithClaims -> %w", err)
	}

	if claims.UserAgent != userAgent {
		return nil, ErrUserAgentMismatch
	}

	return claims, nil
}
