/*
Package jwt verifies the access tokens issued by the backend-as-a-service
auth provider and exposes the authenticated caller to handlers.

The service never issues user sessions itself: browser clients sign in
against the BaaS and forward its HS256 access token as a Bearer token.
*/
package jwt

import "github.com/golang-jwt/jwt"

// AuthenticatedAudience is the audience claim carried by signed-in user tokens.
const AuthenticatedAudience = "authenticated"

// Claims is the subset of the BaaS access token claims the service uses.
// StandardClaims.Subject is the user id.
type Claims struct {
	jwt.StandardClaims

	// Email is the signed-in user's email address, if any.
	Email string `json:"email,omitempty"`

	// Role is the database role the token maps to (e.g. "authenticated", "anon").
	Role string `json:"role,omitempty"`
}

// UserID returns the authenticated user's id.
func (c *Claims) UserID() string {
	return c.Subject
}
