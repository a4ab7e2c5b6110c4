package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

var (
	// ErrInvalidToken is returned for tokens that fail signature or claim checks.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrAnonymousToken is returned for valid tokens that do not identify a user.
	ErrAnonymousToken = errors.New("token does not identify a signed-in user")
)

// ParseToken verifies tokenString with secretKey and returns its claims.
// Only HMAC-signed tokens for the authenticated audience with a subject are accepted.
func ParseToken(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyAudience(AuthenticatedAudience, true) || claims.Subject == "" {
		return nil, ErrAnonymousToken
	}

	return claims, nil
}
