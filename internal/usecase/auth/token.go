package auth

import "time"

// Claims is the decoded token payload returned on successful verification.
type Claims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Generate(userID string) (string, error)
	Validate(token string) (*Claims, error)
}
