package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims represents the JWT claims structure issued by the
// identity provider. The core trusts this identity for all ownership
// checks; session issuance itself is an external collaborator.
type SessionClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *SessionClaims) GetUserID() string {
	return c.Subject
}
