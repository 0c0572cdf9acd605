// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"shopsmart/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterCustomerInput defines the data required to stage a customer registration.
type RegisterCustomerInput struct {
	Email             string
	FirstName         string
	LastName          string
	Password          string
	Phone             string
	PreferredLocation string
}

// RegisterShopOwnerInput defines the data required to stage a shop owner registration.
type RegisterShopOwnerInput struct {
	Email      string
	FirstName  string
	LastName   string
	Password   string
	Phone      string
	ShopName   string
	Address    string
	City       string
	PostalCode string
	MapAddress string
	Latitude   float64
	Longitude  float64
}

// VerifyInput carries the email and submitted code for verification.
type VerifyInput struct {
	Email string
	Code  string
}

// ResendInput identifies the pending registration to refresh.
type ResendInput struct {
	Email string
}

// --- Output DTOs ---

// RegisterOutput returns the canonical email the verification code was sent to.
type RegisterOutput struct {
	Email string
}

// VerifyOutput returns the newly materialized account.
type VerifyOutput struct {
	Account *entity.Account
}

// CleanupOutput reports how many stale pending registrations were removed.
type CleanupOutput struct {
	Deleted   int64
	OlderThan time.Time
}

// RegistrationUsecase drives the email-verification registration flow.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type RegistrationUsecase interface {
	// RegisterCustomer stages a customer signup and dispatches a verification code.
	RegisterCustomer(ctx context.Context, input *RegisterCustomerInput) (*RegisterOutput, error)

	// RegisterShopOwner stages a shop owner signup and dispatches a verification code.
	RegisterShopOwner(ctx context.Context, input *RegisterShopOwnerInput) (*RegisterOutput, error)

	// Verify checks a submitted code and, on success, promotes the pending
	// registration to a full account with its role-specific profile.
	Verify(ctx context.Context, input *VerifyInput) (*VerifyOutput, error)

	// Resend re-issues a verification code for a live pending registration,
	// resetting both expiry windows.
	Resend(ctx context.Context, input *ResendInput) (*RegisterOutput, error)

	// CleanupExpired deletes pending registrations older than the record TTL.
	CleanupExpired(ctx context.Context) (*CleanupOutput, error)
}
