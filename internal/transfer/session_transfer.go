package transfer

import "github.com/golang-jwt/jwt/v5"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionClaims is the agent's own session token payload, distinct from the
// backend session cookie the agent holds on the user's behalf.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
