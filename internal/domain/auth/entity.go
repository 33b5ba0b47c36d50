package auth

import (
	"errors"
	"time"
)

var (
	// ErrUserExists signals a duplicate username registration.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates a login failure. It deliberately does
	// not distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput indicates missing registration input.
	ErrInvalidInput = errors.New("username and password are required")
	// ErrUserNotFound indicates a missing user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenMissing means no token was supplied at all.
	ErrTokenMissing = errors.New("no token provided")
	// ErrTokenInvalid means a token failed signature or structural checks.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired means a correctly signed token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// User models the credential record persisted in storage. Usernames are
// case-sensitive and unique; PasswordHash never leaves the auth core.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Username string
	Password string
}
