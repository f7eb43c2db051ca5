package entity

import "github.com/google/uuid"

// TokenClaims is the authenticated identity carried by a session token.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"is_admin"`
}
