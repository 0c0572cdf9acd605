package usecase

import (
	"context"

	"shopsmart/internal/domain/entity"
)

// AccountMaterializer promotes a verified pending registration into a durable
// account plus its role-specific profile in a single transaction.
type AccountMaterializer interface {
	// Materialize creates the account and profile, deletes the pending
	// record, and returns the new account. A unique-email violation is
	// surfaced as the already-registered conflict so verification races
	// resolve cleanly.
	Materialize(ctx context.Context, pending *entity.PendingRegistration) (*entity.Account, error)
}
