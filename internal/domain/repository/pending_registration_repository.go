package repository

import (
	"context"
	"errors"
	"time"

	"shopsmart/internal/domain/entity"
)

// ErrPendingRegistrationNotFound is returned when no pending registration
// exists for an email.
var ErrPendingRegistrationNotFound = errors.New("pending registration not found")

// PendingRegistrationRepository holds unconfirmed registrations keyed by
// canonical email. Implementations must tolerate concurrent readers and
// writers; the registration flow relies on re-validation, not locking.
type PendingRegistrationRepository interface {
	// GetByEmail retrieves the pending registration for a canonical email.
	GetByEmail(ctx context.Context, email string) (*entity.PendingRegistration, error)

	// Upsert creates or replaces the pending registration keyed by its email.
	Upsert(ctx context.Context, pending *entity.PendingRegistration) error

	// Delete removes the pending registration for a canonical email.
	// Deleting an absent record is not an error.
	Delete(ctx context.Context, email string) error

	// DeleteExpired removes every record created before the threshold and
	// returns the number deleted. Safe to call concurrently with live
	// traffic; a no-op on a store with no expired records.
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}
