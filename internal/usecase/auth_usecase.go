package usecase

import (
	"context"

	"shopsmart/internal/domain/entity"
)

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	Account      *entity.Account
}

// AuthUsecase defines the interface for authentication operations on
// materialized accounts.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
