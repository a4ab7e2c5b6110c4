/*
Package jwttest mints access tokens shaped like the ones the BaaS auth
provider issues, for tests of code behind jwt.RequireUser.
*/
package jwttest

import (
	"time"

	gojwt "github.com/golang-jwt/jwt"

	"nexora/internal/pkg/auth/jwt"
)

// Sign signs claims with HS256, stamping issue and expiry times. An empty
// audience defaults to jwt.AuthenticatedAudience.
func Sign(claims *jwt.Claims, secretKey string, duration time.Duration) (string, error) {
	now := time.Now()

	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(duration).Unix()
	if claims.Audience == "" {
		claims.Audience = jwt.AuthenticatedAudience
	}

	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}

// ForUser returns a token for a signed-in user with the given subject,
// valid for one minute.
func ForUser(subject, email, secretKey string) (string, error) {
	return Sign(&jwt.Claims{
		StandardClaims: gojwt.StandardClaims{Subject: subject},
		Email:          email,
		Role:           jwt.AuthenticatedAudience,
	}, secretKey, time.Minute)
}
