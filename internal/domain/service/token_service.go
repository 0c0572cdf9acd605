package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenPair represents a pair of access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenClaims represents the validated claims extracted from a token.
type TokenClaims struct {
	AccountID uuid.UUID
	Role      string
}

// TokenService defines the interface for token generation and validation.
type TokenService interface {
	// GenerateTokens creates a new pair of access and refresh tokens for an account.
	GenerateTokens(accountID uuid.UUID, role string) (*TokenPair, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
}
