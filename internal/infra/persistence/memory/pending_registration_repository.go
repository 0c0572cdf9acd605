// Package memory provides in-process implementations of the repository
// interfaces, used by tests and local development.
package memory

import (
	"context"
	"sync"
	"time"

	"shopsmart/internal/domain/entity"
	"shopsmart/internal/domain/repository"
)

// pendingRegistrationRepository is a thread-safe in-memory implementation of
// the PendingRegistrationRepository interface.
type pendingRegistrationRepository struct {
	mu      sync.RWMutex
	records map[string]entity.PendingRegistration
}

// NewPendingRegistrationRepository creates an empty in-memory store.
func NewPendingRegistrationRepository() repository.PendingRegistrationRepository {
	return &pendingRegistrationRepository{
		records: make(map[string]entity.PendingRegistration),
	}
}

// GetByEmail retrieves the pending registration for a canonical email.
func (repo *pendingRegistrationRepository) GetByEmail(_ context.Context, email string) (*entity.PendingRegistration, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	record, ok := repo.records[email]
	if !ok {
		return nil, repository.ErrPendingRegistrationNotFound
	}

	// Return a copy so callers cannot mutate the stored record.
	return &record, nil
}

// Upsert creates or replaces the pending registration keyed by its email.
func (repo *pendingRegistrationRepository) Upsert(_ context.Context, pending *entity.PendingRegistration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.records[pending.Email] = *pending

	return nil
}

// Delete removes the pending registration for a canonical email.
func (repo *pendingRegistrationRepository) Delete(_ context.Context, email string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	delete(repo.records, email)

	return nil
}

// DeleteExpired removes every record created before the threshold.
func (repo *pendingRegistrationRepository) DeleteExpired(_ context.Context, olderThan time.Time) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var deleted int64
	for email, record := range repo.records {
		if record.CreatedAt.Before(olderThan) {
			delete(repo.records, email)
			deleted++
		}
	}

	return deleted, nil
}
