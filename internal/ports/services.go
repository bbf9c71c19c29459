package ports

import "context"

// TokenClaims carries the identity extracted from an access token
type TokenClaims struct {
	UserID string
	Name   string
	Role   string
}

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PasswordService hashes and verifies credentials
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}

// RateLimitService limits repeated attempts per key within a window
type RateLimitService interface {
	CheckLimit(ctx context.Context, key string, limit int) (bool, error)
	Increment(ctx context.Context, key string) error
}
