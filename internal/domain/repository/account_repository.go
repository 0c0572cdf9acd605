// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"shopsmart/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByEmail retrieves a single account by canonical email, including its
	// role-specific profile.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account entity together with its profile. A unique
	// email violation is reported as domain errors.ErrAlreadyRegistered so the
	// caller can treat it as a lost verification race.
	Create(ctx context.Context, account *entity.Account) error

	// Delete removes an account and its profile. Used to reclaim inactive
	// accounts during registration intake.
	Delete(ctx context.Context, id uuid.UUID) error
}
