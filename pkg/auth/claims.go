package auth

import "github.com/golang-jwt/jwt/v5"

// SessionClaims identifies an anonymous shopper session. The session id is
// carried in the registered subject claim.
type SessionClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

const sessionKind = "shopper_session"

// SessionID returns the session identifier carried by the token.
func (c *SessionClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
